package config

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSNString builds the postgres connection string.
func (c DBConfig) DSNString() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

// GormConfig is shared by the server and the test harness.
func GormConfig(development bool) *gorm.Config {
	gormConfig := &gorm.Config{
		TranslateError: true, // unique violations -> gorm.ErrDuplicatedKey
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	if development {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}
	return gormConfig
}

// ConnectDB opens the postgres pool and sets the global DB.
func ConnectDB(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.DB.DSNString()), GormConfig(cfg.IsDevelopment()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	DB = gormDB
	return gormDB, nil
}

// CloseDB releases the pool behind a gorm handle.
func CloseDB(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
