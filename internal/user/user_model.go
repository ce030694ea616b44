package user

import "time"

// Global account roles.
const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RolePlayer  = "player"
)

type User struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Username      string     `json:"username" gorm:"uniqueIndex;not null"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Password      string     `json:"-" gorm:"not null"`
	Name          string     `json:"name"`
	BirthDate     *time.Time `json:"birth_date,omitempty" gorm:"type:date"`
	Role          string     `json:"role" gorm:"not null;default:'player';index"`
	IsPlaceholder bool       `json:"is_placeholder" gorm:"not null;default:false"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
