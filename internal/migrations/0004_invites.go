package migrations

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type teamInviteV1 struct {
	ID           uint   `gorm:"primaryKey"`
	TeamID       uint   `gorm:"not null;index"`
	Token        string `gorm:"size:64;uniqueIndex;not null"`
	Role         string `gorm:"not null"`
	ExpiresAt    *time.Time
	MaxUses      *int
	UsedCount    int `gorm:"not null;default:0"`
	PlayerName   string
	BirthDate    *time.Time `gorm:"type:date"`
	JerseyNumber *int
	CreatedByID  uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Team         *teamV1 `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

func (teamInviteV1) TableName() string { return "team_invites" }

type trainerInviteV1 struct {
	ID          uint                      `gorm:"primaryKey"`
	Token       string                    `gorm:"size:64;uniqueIndex;not null"`
	TeamIDs     datatypes.JSONSlice[uint] `gorm:"not null"`
	UserID      *uint                     `gorm:"index"`
	Email       string
	Name        string
	ExpiresAt   *time.Time
	UsedCount   int `gorm:"not null;default:0"`
	CreatedByID uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
	User        *userV1 `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

func (trainerInviteV1) TableName() string { return "trainer_invites" }

func upInvites(db *gorm.DB) error {
	return db.AutoMigrate(&teamInviteV1{}, &trainerInviteV1{})
}

func downInvites(db *gorm.DB) error {
	return db.Migrator().DropTable(&trainerInviteV1{}, &teamInviteV1{})
}
