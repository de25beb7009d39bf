package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"habit/internal/errors"
	"habit/internal/infra/persistence/migrations"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrator applies the embedded schema migrations.
type Migrator struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewMigrator creates a Migrator for the given connection.
func NewMigrator(db *gorm.DB, logger *slog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Up runs every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "goose.SetDialect")
	}

	if err := gooseUpContext(ctx, sqlDB, "."); err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	m.logger.InfoContext(ctx, "Database migrations applied")

	return nil
}
