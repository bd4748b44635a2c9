package usecases

import (
	"context"
	"sync"
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
	"campusvoice/internal/domain/routing"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/infrastructure/migration"
	"campusvoice/internal/infrastructure/repository"
	"campusvoice/internal/shared/db"
	"campusvoice/internal/shared/logger"
)

// =====================================================================
// Mock Implementations
// =====================================================================

type mockRoutingAlerter struct {
	mu    sync.Mutex
	slots []string
}

func (m *mockRoutingAlerter) AlertNoAuthority(_ context.Context, slot string, _ error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = append(m.slots, slot)
	return true
}

func (m *mockRoutingAlerter) alerts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.slots...)
}

type mockSubmissionThrottle struct {
	AllowFunc func(ctx context.Context, studentID string) (bool, error)
}

func (m *mockSubmissionThrottle) Allow(ctx context.Context, studentID string) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, studentID)
	}
	return true, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *recordingPublisher) Publish(event events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		_ = p.Publish(e)
	}
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.GetEventType()
	}
	return out
}

// conflictingComplaints fails the first n updates as if another writer had
// bumped the version.
type conflictingComplaints struct {
	complaint.Repository
	mu      sync.Mutex
	n       int
	updates int
}

func (r *conflictingComplaints) Update(ctx context.Context, c *complaint.Complaint) error {
	r.mu.Lock()
	r.updates++
	fail := r.updates <= r.n
	r.mu.Unlock()
	if fail {
		return complaint.ErrConcurrentModification
	}
	return r.Repository.Update(ctx, c)
}

// =====================================================================
// Fixtures
// =====================================================================

var (
	profileMaleHosteller   = campus.Profile{Gender: campus.GenderMale, StayType: campus.StayHostel, DepartmentID: 1}
	profileFemaleHosteller = campus.Profile{Gender: campus.GenderFemale, StayType: campus.StayHostel, DepartmentID: 1}
	profileDayScholar      = campus.Profile{Gender: campus.GenderMale, StayType: campus.StayDayScholar, DepartmentID: 2}
)

type testEnv struct {
	db            *gorm.DB
	txm           *db.TransactionManager
	complaints    *repository.ComplaintRepository
	statusUpdates *repository.StatusUpdateRepository
	escalations   *repository.EscalationRepository
	votes         *repository.VoteRepository
	authorities   *repository.AuthorityRepository
	students      *repository.StudentRepository
	departments   *repository.DepartmentRepository
	publisher     *recordingPublisher
	alerter       *mockRoutingAlerter
	throttle      *mockSubmissionThrottle
	policy        *complaint.PriorityPolicy
	retry         RetryPolicy
	log           logger.Interface

	wardenMen *authority.Authority
	deputyMen *authority.Authority
	officer   *authority.Authority
	hodCSE    *authority.Authority
	admin     *authority.Authority
}

// newTestEnv migrates an in-memory database and seeds departments CSE (1)
// and ECE (2), students S1 (male hosteller, CSE), S2 (female hosteller,
// CSE), S3 (male day scholar, ECE) and the inactive S9, plus a Warden-Men,
// Deputy-Warden-Men, Admin-Officer, CSE HOD and Admin. The Senior Deputy
// Warden slot is left empty.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.NewMigrator(gdb, "sqlite", logger.NewDiscard())
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))

	env := &testEnv{
		db:            gdb,
		txm:           db.NewTransactionManager(gdb),
		complaints:    repository.NewComplaintRepository(gdb),
		statusUpdates: repository.NewStatusUpdateRepository(gdb),
		escalations:   repository.NewEscalationRepository(gdb),
		votes:         repository.NewVoteRepository(gdb),
		authorities:   repository.NewAuthorityRepository(gdb),
		students:      repository.NewStudentRepository(gdb),
		departments:   repository.NewDepartmentRepository(gdb),
		publisher:     &recordingPublisher{},
		alerter:       &mockRoutingAlerter{},
		throttle:      &mockSubmissionThrottle{},
		policy:        complaint.DefaultPriorityPolicy(),
		retry:         RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond},
		log:           logger.NewDiscard(),
	}

	ctx := context.Background()
	for _, d := range []*campus.Department{{Code: "CSE", Name: "Computer Science"}, {Code: "ECE", Name: "Electronics"}} {
		require.NoError(t, env.departments.Create(ctx, d))
	}

	env.addStudent(t, "S1", profileMaleHosteller, true)
	env.addStudent(t, "S2", profileFemaleHosteller, true)
	env.addStudent(t, "S3", profileDayScholar, true)
	env.addStudent(t, "S9", profileMaleHosteller, false)

	cse := uint(1)
	env.wardenMen = env.addAuthority(t, authority.TypeWardenMen, nil)
	env.deputyMen = env.addAuthority(t, authority.TypeDeputyWardenMen, nil)
	env.officer = env.addAuthority(t, authority.TypeAdminOfficer, nil)
	env.hodCSE = env.addAuthority(t, authority.TypeHOD, &cse)
	env.admin = env.addAuthority(t, authority.TypeAdmin, nil)
	return env
}

func (e *testEnv) addStudent(t *testing.T, rollNo string, p campus.Profile, active bool) *campus.Student {
	t.Helper()
	s, err := campus.ReconstructStudent(rollNo, "Student "+rollNo, rollNo+"@campus.edu", p, active)
	require.NoError(t, err)
	require.NoError(t, e.students.Upsert(context.Background(), s))
	return s
}

func (e *testEnv) addAuthority(t *testing.T, typ authority.Type, departmentID *uint) *authority.Authority {
	t.Helper()
	a, err := authority.NewAuthority(string(typ)+" holder", "", typ, departmentID)
	require.NoError(t, err)
	require.NoError(t, e.authorities.Create(context.Background(), a))
	return a
}

func (e *testEnv) submitUseCase() *SubmitComplaintUseCase {
	return NewSubmitComplaintUseCase(
		e.students, e.complaints, e.escalations,
		routing.NewResolver(e.authorities, e.departments, routing.FallbackSubmitter),
		e.txm, e.publisher, e.alerter, e.throttle, e.policy, e.log,
	)
}

// submit files a complaint through the use case and fails the test on error.
func (e *testEnv) submit(t *testing.T, studentID string, category vo.Category, visibility vo.Visibility) string {
	t.Helper()
	result, err := e.submitUseCase().Execute(context.Background(), SubmitComplaintCommand{
		StudentID:      studentID,
		Text:           "The corridor lights on the second floor are broken",
		Classification: Classification{Category: category},
		Visibility:     visibility,
	})
	require.NoError(t, err)
	return result.ID
}

func (e *testEnv) transitionUseCase() *TransitionStatusUseCase {
	return NewTransitionStatusUseCase(e.complaints, e.statusUpdates, e.authorities, e.txm, e.publisher, e.retry, e.log)
}

func (e *testEnv) escalateUseCase() *EscalateComplaintUseCase {
	return NewEscalateComplaintUseCase(e.complaints, e.escalations, e.authorities, e.txm, e.publisher, e.alerter, e.retry, e.log)
}

func (e *testEnv) castVoteUseCase() *CastVoteUseCase {
	return NewCastVoteUseCase(e.complaints, e.votes, e.students, e.txm, e.publisher, e.policy, e.retry, e.log)
}

func (e *testEnv) removeVoteUseCase() *RemoveVoteUseCase {
	return NewRemoveVoteUseCase(e.complaints, e.votes, e.students, e.txm, e.publisher, e.policy, e.retry, e.log)
}

func (e *testEnv) integrityUseCase() *IntegrityCheckUseCase {
	return NewIntegrityCheckUseCase(e.complaints, e.statusUpdates, e.escalations, e.votes, e.authorities, e.policy, e.log)
}
