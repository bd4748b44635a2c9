package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/infrastructure/migration"
	"campusvoice/internal/shared/logger"
)

// setupTestDB returns a migrated in-memory sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.NewMigrator(db, "sqlite", logger.NewDiscard())
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))
	return db
}

func createAuthority(t *testing.T, repo *AuthorityRepository, typ authority.Type, departmentID *uint) *authority.Authority {
	t.Helper()
	a, err := authority.NewAuthority(string(typ)+" holder", "", typ, departmentID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

type submissionOption func(*complaint.Submission, *complaint.Placement)

func inCategory(c vo.Category, v vo.Visibility) submissionOption {
	return func(s *complaint.Submission, _ *complaint.Placement) {
		s.Category = c
		s.Visibility = v
	}
}

func bySubmitter(id string, p campus.Profile) submissionOption {
	return func(s *complaint.Submission, _ *complaint.Placement) {
		s.SubmitterID = id
		s.Submitter = p
	}
}

func routedTo(departmentID uint, cross bool) submissionOption {
	return func(_ *complaint.Submission, p *complaint.Placement) {
		p.DepartmentID = &departmentID
		p.IsCrossDepartment = cross
	}
}

func withTier(tier vo.PriorityTier) submissionOption {
	return func(s *complaint.Submission, _ *complaint.Placement) { s.BaseTier = tier }
}

// storeComplaint creates and persists a complaint with its level-0 record.
func storeComplaint(t *testing.T, db *gorm.DB, assignee *authority.Authority, opts ...submissionOption) *complaint.Complaint {
	t.Helper()
	s := complaint.Submission{
		Category:     vo.CategoryGeneral,
		OriginalText: "Projector in room 204 does not turn on",
		Visibility:   vo.VisibilityPublic,
		BaseTier:     vo.TierLow,
		SubmitterID:  "S1",
		Submitter:    campus.Profile{Gender: campus.GenderMale, StayType: campus.StayHostel, DepartmentID: 1},
	}
	p := complaint.Placement{Authority: assignee}
	for _, opt := range opts {
		opt(&s, &p)
	}
	c, rec, err := complaint.NewComplaint(s, p, complaint.DefaultPriorityPolicy())
	require.NoError(t, err)
	c.PullEvents()

	ctx := context.Background()
	require.NoError(t, NewComplaintRepository(db).Create(ctx, c))
	require.NoError(t, NewEscalationRepository(db).Create(ctx, rec))
	return c
}
