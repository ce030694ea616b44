// team/model.go
package team

import (
	"time"

	"github.com/DhavalSuthar-24/squadup/internal/user"
	"gorm.io/gorm"
)

// Team membership roles.
const (
	MemberRoleTrainer = "trainer"
	MemberRolePlayer  = "player"
	MemberRoleStaff   = "staff"
)

// Team represents a sports team
type Team struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Sport       string `json:"sport" gorm:"index"`
	CreatedByID uint   `json:"created_by_id" gorm:"index"`
}

// TeamMember binds a user to a team. One row per (team, user).
type TeamMember struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	TeamID       uint       `json:"team_id" gorm:"not null;uniqueIndex:idx_team_members_team_user"`
	UserID       uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_team_members_team_user;index"`
	Role         string     `json:"role" gorm:"not null;default:'player'"`
	JerseyNumber *int       `json:"jersey_number,omitempty"`
	Position     string     `json:"position,omitempty"`
	JoinedAt     time.Time  `json:"joined_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	User         *user.User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Team         *Team      `json:"-" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// ValidMemberRole reports whether role is a known membership role.
func ValidMemberRole(role string) bool {
	switch role {
	case MemberRoleTrainer, MemberRolePlayer, MemberRoleStaff:
		return true
	}
	return false
}
