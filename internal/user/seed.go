package user

import (
	"context"
	"fmt"

	"github.com/DhavalSuthar-24/squadup/pkg/utils"
)

// EnsureAdmin creates the bootstrap admin account unless the username exists.
func EnsureAdmin(ctx context.Context, repo UserRepository, username, email, password string) (*User, bool, error) {
	if username == "" || password == "" {
		return nil, false, nil
	}
	existing, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, false, fmt.Errorf("lookup admin: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("hash admin password: %w", err)
	}
	if email == "" {
		email = username + "@squadup.local"
	}
	admin := &User{
		Username: username,
		Email:    email,
		Password: hash,
		Name:     "Administrator",
		Role:     RoleAdmin,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		return nil, false, fmt.Errorf("create admin: %w", err)
	}
	return admin, true, nil
}
