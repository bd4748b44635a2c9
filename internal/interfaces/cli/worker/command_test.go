package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campusvoice/internal/infrastructure/config"
	"campusvoice/internal/infrastructure/migration"
	"campusvoice/internal/shared/logger"
)

func TestNewIntegrityJob_EmptyDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.NewMigrator(db, "sqlite", logger.NewDiscard())
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))

	t.Chdir(t.TempDir())
	cfg, err := config.Load("test")
	require.NoError(t, err)

	job, err := NewIntegrityJob(db, cfg, logger.NewDiscard())
	require.NoError(t, err)

	violations, err := job.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, violations)
}

func TestNewIntegrityJob_RejectsBadPolicy(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("test")
	require.NoError(t, err)
	cfg.Priority.VoteMultiplier = 0

	_, err = NewIntegrityJob(nil, cfg, logger.NewDiscard())
	assert.Error(t, err)
}
