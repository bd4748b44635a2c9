// Package migration applies the embedded, versioned SQL schema with goose.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"campusvoice/internal/shared/logger"
)

//go:embed scripts/sqlite/*.sql scripts/mysql/*.sql
var scripts embed.FS

// VersionStatus describes one known migration.
type VersionStatus struct {
	Version int64
	Path    string
	Applied bool
}

// Migrator runs the scripts matching one database driver.
type Migrator struct {
	provider *goose.Provider
	driver   string
	logger   logger.Interface
}

// NewMigrator prepares a migrator for driver ("mysql" or "sqlite") over db.
func NewMigrator(db *gorm.DB, driver string, log logger.Interface) (*Migrator, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return newMigrator(sqlDB, driver, log)
}

func newMigrator(sqlDB *sql.DB, driver string, log logger.Interface) (*Migrator, error) {
	var dialect goose.Dialect
	switch driver {
	case "sqlite":
		dialect = goose.DialectSQLite3
	case "mysql", "":
		driver = "mysql"
		dialect = goose.DialectMySQL
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	fsys, err := fs.Sub(scripts, "scripts/"+driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s scripts: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return &Migrator{
		provider: provider,
		driver:   driver,
		logger:   log.With("component", "migration.goose"),
	}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	from, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		m.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	m.logger.Infow("starting goose migration", "driver", m.driver, "version", from)

	results, err := m.provider.Up(ctx)
	if err != nil {
		m.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	m.logger.Infow("migration completed successfully",
		"from_version", from,
		"to_version", to,
		"applied", len(results))
	return nil
}

// Down rolls back steps migrations, stopping early at version 0.
func (m *Migrator) Down(ctx context.Context, steps int) error {
	m.logger.Infow("starting down migration", "steps", steps)

	for i := 0; i < steps; i++ {
		version, err := m.provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}
		if version == 0 {
			break
		}
		if _, err := m.provider.Down(ctx); err != nil {
			m.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	m.logger.Infow("down migration completed successfully")
	return nil
}

// Version returns the latest applied migration version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return m.provider.GetDBVersion(ctx)
}

// Status lists every embedded migration and whether it is applied.
func (m *Migrator) Status(ctx context.Context) ([]VersionStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	out := make([]VersionStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, VersionStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
