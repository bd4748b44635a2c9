package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/notice"
	"campusvoice/internal/domain/shared/events"
)

type mockNoticeRepository struct {
	CreateFunc     func(ctx context.Context, n *notice.Notice) error
	GetByIDFunc    func(ctx context.Context, id uint) (*notice.Notice, error)
	UpdateFunc     func(ctx context.Context, n *notice.Notice) error
	ListActiveFunc func(ctx context.Context, now time.Time) ([]*notice.Notice, error)
}

func (m *mockNoticeRepository) Create(ctx context.Context, n *notice.Notice) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	return n.SetID(1)
}

func (m *mockNoticeRepository) GetByID(ctx context.Context, id uint) (*notice.Notice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, notice.ErrNoticeNotFound
}

func (m *mockNoticeRepository) Update(ctx context.Context, n *notice.Notice) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, n)
	}
	return nil
}

func (m *mockNoticeRepository) ListActive(ctx context.Context, now time.Time) ([]*notice.Notice, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, now)
	}
	return nil, nil
}

type mockAuthorityRepository struct {
	GetByIDFunc    func(ctx context.Context, id uint) (*authority.Authority, error)
	FindActiveFunc func(ctx context.Context, t authority.Type, departmentID *uint) (*authority.Authority, error)
}

func (m *mockAuthorityRepository) GetByID(ctx context.Context, id uint) (*authority.Authority, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, authority.ErrAuthorityNotFound
}

func (m *mockAuthorityRepository) FindActive(ctx context.Context, t authority.Type, departmentID *uint) (*authority.Authority, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, t, departmentID)
	}
	return nil, nil
}

func (m *mockAuthorityRepository) Create(context.Context, *authority.Authority) error {
	return nil
}

type mockStudentRepository struct {
	GetByRollNoFunc func(ctx context.Context, rollNo string) (*campus.Student, error)
}

func (m *mockStudentRepository) GetByRollNo(ctx context.Context, rollNo string) (*campus.Student, error) {
	if m.GetByRollNoFunc != nil {
		return m.GetByRollNoFunc(ctx, rollNo)
	}
	return nil, campus.ErrStudentNotFound
}

type mockRenderer struct {
	ToSafeHTMLFunc func(markdown string) (string, error)
}

func (m *mockRenderer) ToSafeHTML(markdown string) (string, error) {
	if m.ToSafeHTMLFunc != nil {
		return m.ToSafeHTMLFunc(markdown)
	}
	return "<p>" + markdown + "</p>", nil
}

func (m *mockRenderer) PlainText(s string) string { return s }

type mockEventPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (m *mockEventPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		_ = m.Publish(e)
	}
	return nil
}

func (m *mockEventPublisher) published() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.GetEventType()
	}
	return out
}

func testAuthority(t *testing.T, id uint, typ authority.Type, departmentID *uint) *authority.Authority {
	t.Helper()
	a, err := authority.ReconstructAuthority(id, string(typ)+" holder", "", typ, departmentID, typ.Rank(), true, time.Now().UTC())
	require.NoError(t, err)
	return a
}

// authoritiesOf serves GetByID from the given authorities.
func authoritiesOf(list ...*authority.Authority) *mockAuthorityRepository {
	return &mockAuthorityRepository{
		GetByIDFunc: func(_ context.Context, id uint) (*authority.Authority, error) {
			for _, a := range list {
				if a.ID() == id {
					return a, nil
				}
			}
			return nil, authority.ErrAuthorityNotFound
		},
	}
}
