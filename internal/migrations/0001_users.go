package migrations

import (
	"time"

	"gorm.io/gorm"
)

type userV1 struct {
	ID            uint   `gorm:"primaryKey"`
	Username      string `gorm:"uniqueIndex;not null"`
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	Name          string
	BirthDate     *time.Time `gorm:"type:date"`
	Role          string     `gorm:"not null;default:'player';index"`
	IsPlaceholder bool       `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (userV1) TableName() string { return "users" }

func upUsers(db *gorm.DB) error {
	return db.AutoMigrate(&userV1{})
}

func downUsers(db *gorm.DB) error {
	return db.Migrator().DropTable(&userV1{})
}
