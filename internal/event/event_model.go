package event

import (
	"time"

	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/user"
)

// Event types.
const (
	TypeTraining = "training"
	TypeMatch    = "match"
	TypeOther    = "other"
)

// Response statuses.
const (
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusTentative = "tentative"
	StatusPending   = "pending"
)

// Event is a scheduled team activity. Occurrences created from one recurrence
// request share a SeriesID.
type Event struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	TeamID           uint            `json:"team_id" gorm:"not null;index:idx_events_team_start"`
	Title            string          `json:"title" gorm:"not null"`
	Type             string          `json:"type" gorm:"not null;default:'training'"`
	Description      string          `json:"description,omitempty"`
	Location         string          `json:"location,omitempty"`
	StartTime        time.Time       `json:"start_time" gorm:"not null;index:idx_events_team_start"`
	EndTime          time.Time       `json:"end_time" gorm:"not null"`
	RSVPDeadline     *time.Time      `json:"rsvp_deadline,omitempty"`
	SeriesID         *string         `json:"series_id,omitempty" gorm:"size:36;index"`
	ResponsesVisible bool            `json:"responses_visible" gorm:"not null"`
	InviteAll        bool            `json:"invite_all" gorm:"not null"`
	CreatedByID      uint            `json:"created_by_id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Team             *team.Team      `json:"-" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Responses        []EventResponse `json:"responses,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// EventResponse is a member's RSVP. One row per (event, user).
type EventResponse struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	EventID     uint       `json:"event_id" gorm:"not null;uniqueIndex:idx_event_responses_event_user"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_event_responses_event_user;index"`
	Status      string     `json:"status" gorm:"not null;default:'pending'"`
	Comment     *string    `json:"comment,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	User        *user.User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func ValidType(t string) bool {
	switch t {
	case TypeTraining, TypeMatch, TypeOther:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusAccepted, StatusDeclined, StatusTentative, StatusPending:
		return true
	}
	return false
}

// MemberStats counts one member's responses over past events.
type MemberStats struct {
	UserID    uint  `json:"user_id"`
	Accepted  int64 `json:"accepted"`
	Declined  int64 `json:"declined"`
	Tentative int64 `json:"tentative"`
	Pending   int64 `json:"pending"`
	Total     int64 `json:"total"`
}
