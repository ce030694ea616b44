package migrations

import (
	"time"

	"gorm.io/gorm"
)

type teamV1 struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	Sport       string `gorm:"index"`
	CreatedByID uint   `gorm:"index"`
}

func (teamV1) TableName() string { return "teams" }

type teamMemberV1 struct {
	ID           uint   `gorm:"primaryKey"`
	TeamID       uint   `gorm:"not null;uniqueIndex:idx_team_members_team_user"`
	UserID       uint   `gorm:"not null;uniqueIndex:idx_team_members_team_user;index"`
	Role         string `gorm:"not null;default:'player'"`
	JerseyNumber *int
	Position     string
	JoinedAt     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	User         *userV1 `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Team         *teamV1 `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

func (teamMemberV1) TableName() string { return "team_members" }

func upTeams(db *gorm.DB) error {
	return db.AutoMigrate(&teamV1{}, &teamMemberV1{})
}

func downTeams(db *gorm.DB) error {
	return db.Migrator().DropTable(&teamMemberV1{}, &teamV1{})
}
