// Package migrations holds the versioned schema. Each migration carries its
// own snapshot of the tables it touches so later model changes never rewrite
// history.
package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// all lists every migration in version order. Each step runs inside goose's
// transaction through a gorm handle sharing gdb's dialect.
func all(gdb *gorm.DB) []*goose.Migration {
	step := func(fn func(*gorm.DB) error) *goose.GoFunc {
		return &goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
			return fn(onTx(ctx, gdb, tx))
		}}
	}
	return []*goose.Migration{
		goose.NewGoMigration(1, step(upUsers), step(downUsers)),
		goose.NewGoMigration(2, step(upTeams), step(downTeams)),
		goose.NewGoMigration(3, step(upEvents), step(downEvents)),
		goose.NewGoMigration(4, step(upInvites), step(downInvites)),
	}
}

// NewProvider builds a goose provider over the database behind gdb.
func NewProvider(gdb *gorm.DB) (*goose.Provider, error) {
	if gdb == nil {
		return nil, errors.New("nil database provided")
	}
	dialect, err := dialectFor(gdb.Dialector.Name())
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, sqlDB, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(all(gdb)...),
	)
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, gdb *gorm.DB, log *zap.Logger) error {
	provider, err := NewProvider(gdb)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied",
			zap.Int64("version", r.Source.Version),
			zap.Duration("duration", r.Duration))
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, gdb *gorm.DB) error {
	provider, err := NewProvider(gdb)
	if err != nil {
		return err
	}
	_, err = provider.Down(ctx)
	return err
}

// Version returns the current schema version.
func Version(ctx context.Context, gdb *gorm.DB) (int64, error) {
	provider, err := NewProvider(gdb)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

func dialectFor(name string) (goose.Dialect, error) {
	switch name {
	case "postgres":
		return goose.DialectPostgres, nil
	case "sqlite":
		return goose.DialectSQLite3, nil
	}
	return "", fmt.Errorf("unsupported dialect %q", name)
}

// onTx returns a gorm handle that executes on goose's transaction.
func onTx(ctx context.Context, gdb *gorm.DB, tx *sql.Tx) *gorm.DB {
	db := gdb.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true, Context: ctx})
	db.Statement.ConnPool = tx
	return db
}
