package invite

import (
	"time"

	"gorm.io/datatypes"

	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
)

// Invite kinds.
const (
	KindTeam    = "team"
	KindTrainer = "trainer"
)

// Computed invite states. Expired and exhausted invites stay stored.
const (
	StateActive    = "active"
	StateExpired   = "expired"
	StateExhausted = "exhausted"
)

// TeamInvite lets whoever holds the token join one team at Role.
// A nil MaxUses means unlimited, a nil ExpiresAt means it never expires.
type TeamInvite struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	TeamID       uint       `json:"team_id" gorm:"not null;index"`
	Token        string     `json:"token" gorm:"size:64;uniqueIndex;not null"`
	Role         string     `json:"role" gorm:"not null"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	MaxUses      *int       `json:"max_uses,omitempty"`
	UsedCount    int        `json:"used_count" gorm:"not null;default:0"`
	PlayerName   string     `json:"player_name,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty" gorm:"type:date"`
	JerseyNumber *int       `json:"jersey_number,omitempty"`
	CreatedByID  uint       `json:"created_by_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Team         *team.Team `json:"-" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TrainerInvite is a single-use invite for a trainer of several teams. The
// placeholder account in UserID is claimed on acceptance.
type TrainerInvite struct {
	ID          uint                      `json:"id" gorm:"primaryKey"`
	Token       string                    `json:"token" gorm:"size:64;uniqueIndex;not null"`
	TeamIDs     datatypes.JSONSlice[uint] `json:"team_ids" gorm:"not null"`
	UserID      *uint                     `json:"user_id,omitempty" gorm:"index"`
	Email       string                    `json:"email,omitempty"`
	Name        string                    `json:"name,omitempty"`
	ExpiresAt   *time.Time                `json:"expires_at,omitempty"`
	UsedCount   int                       `json:"used_count" gorm:"not null;default:0"`
	CreatedByID uint                      `json:"created_by_id"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
	User        *user.User                `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// TrainerInviteMaxUses is fixed: a trainer invite is consumed once.
const TrainerInviteMaxUses = 1

func (i *TeamInvite) State(now time.Time) string {
	return state(i.ExpiresAt, i.MaxUses, i.UsedCount, now)
}

// Validate fails with Expired or Exhausted when the invite can no longer be used.
func (i *TeamInvite) Validate(now time.Time) error {
	return validate(i.ExpiresAt, i.MaxUses, i.UsedCount, now)
}

func (i *TrainerInvite) State(now time.Time) string {
	limit := TrainerInviteMaxUses
	return state(i.ExpiresAt, &limit, i.UsedCount, now)
}

func (i *TrainerInvite) Validate(now time.Time) error {
	limit := TrainerInviteMaxUses
	return validate(i.ExpiresAt, &limit, i.UsedCount, now)
}

// HasTeam reports whether teamID is one of the invite's teams.
func (i *TrainerInvite) HasTeam(teamID uint) bool {
	for _, id := range i.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

func state(expiresAt *time.Time, maxUses *int, used int, now time.Time) string {
	switch {
	case expiresAt != nil && !now.Before(*expiresAt):
		return StateExpired
	case maxUses != nil && used >= *maxUses:
		return StateExhausted
	}
	return StateActive
}

func validate(expiresAt *time.Time, maxUses *int, used int, now time.Time) error {
	switch state(expiresAt, maxUses, used, now) {
	case StateExpired:
		return apperrors.Expired("invite has expired")
	case StateExhausted:
		return apperrors.Exhausted("invite has already been used")
	}
	return nil
}
