package user

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// UserRepository is the persistence boundary for accounts.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	UpdateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id uint) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByLogin(ctx context.Context, identifier string) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, u *User) error {
	u.Email = strings.ToLower(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) UpdateUser(ctx context.Context, u *User) error {
	u.Email = strings.ToLower(u.Email)
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) DeleteUser(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&User{}, id).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(email))
}

// GetUserByLogin accepts either a username or an e-mail address.
func (r *userRepository) GetUserByLogin(ctx context.Context, identifier string) (*User, error) {
	if strings.Contains(identifier, "@") {
		return r.GetUserByEmail(ctx, identifier)
	}
	return r.GetUserByUsername(ctx, identifier)
}

func (r *userRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]User, error) {
	var users []User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error
	return users, err
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
