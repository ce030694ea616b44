package migrations

import (
	"time"

	"gorm.io/gorm"
)

type eventV1 struct {
	ID               uint   `gorm:"primaryKey"`
	TeamID           uint   `gorm:"not null;index:idx_events_team_start"`
	Title            string `gorm:"not null"`
	Type             string `gorm:"not null;default:'training'"`
	Description      string
	Location         string
	StartTime        time.Time `gorm:"not null;index:idx_events_team_start"`
	EndTime          time.Time `gorm:"not null"`
	RSVPDeadline     *time.Time
	SeriesID         *string `gorm:"size:36;index"`
	ResponsesVisible bool    `gorm:"not null"`
	InviteAll        bool    `gorm:"not null"`
	CreatedByID      uint
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Team             *teamV1 `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

func (eventV1) TableName() string { return "events" }

type eventResponseV1 struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     uint   `gorm:"not null;uniqueIndex:idx_event_responses_event_user"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_event_responses_event_user;index"`
	Status      string `gorm:"not null;default:'pending'"`
	Comment     *string
	RespondedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Event       *eventV1 `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	User        *userV1  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (eventResponseV1) TableName() string { return "event_responses" }

func upEvents(db *gorm.DB) error {
	return db.AutoMigrate(&eventV1{}, &eventResponseV1{})
}

func downEvents(db *gorm.DB) error {
	return db.Migrator().DropTable(&eventResponseV1{}, &eventV1{})
}
