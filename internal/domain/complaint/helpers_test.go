package complaint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	vo "campusvoice/internal/domain/complaint/valueobjects"
)

var (
	maleHosteller   = campus.Profile{Gender: campus.GenderMale, StayType: campus.StayHostel, DepartmentID: 1}
	femaleHosteller = campus.Profile{Gender: campus.GenderFemale, StayType: campus.StayHostel, DepartmentID: 1}
	maleDayScholar  = campus.Profile{Gender: campus.GenderMale, StayType: campus.StayDayScholar, DepartmentID: 2}
)

func testAuthority(t *testing.T, id uint, typ authority.Type, active bool) *authority.Authority {
	t.Helper()
	var dept *uint
	if typ.IsDepartmentScoped() {
		d := uint(1)
		dept = &d
	}
	a, err := authority.ReconstructAuthority(id, string(typ)+" holder", "", typ, dept, typ.Rank(), active, time.Now())
	require.NoError(t, err)
	return a
}

func testStudent(t *testing.T, rollNo string, p campus.Profile) *campus.Student {
	t.Helper()
	s, err := campus.ReconstructStudent(rollNo, "Student "+rollNo, rollNo+"@campus.edu", p, true)
	require.NoError(t, err)
	return s
}

type complaintOption func(*Submission, *Placement)

func withCategory(c vo.Category) complaintOption {
	return func(s *Submission, _ *Placement) { s.Category = c }
}

func withVisibility(v vo.Visibility) complaintOption {
	return func(s *Submission, _ *Placement) { s.Visibility = v }
}

func withSubmitter(id string, p campus.Profile) complaintOption {
	return func(s *Submission, _ *Placement) {
		s.SubmitterID = id
		s.Submitter = p
	}
}

func withDepartment(id uint, cross bool) complaintOption {
	return func(_ *Submission, p *Placement) {
		p.DepartmentID = &id
		p.IsCrossDepartment = cross
	}
}

func withBaseTier(tier vo.PriorityTier) complaintOption {
	return func(s *Submission, _ *Placement) { s.BaseTier = tier }
}

// newTestComplaint creates a Public General complaint by student "S1"
// assigned to assignee.
func newTestComplaint(t *testing.T, assignee *authority.Authority, opts ...complaintOption) (*Complaint, *EscalationRecord) {
	t.Helper()
	s := Submission{
		Category:     vo.CategoryGeneral,
		OriginalText: "Wi-Fi in the library has been down for a week",
		Visibility:   vo.VisibilityPublic,
		BaseTier:     vo.TierLow,
		SubmitterID:  "S1",
		Submitter:    maleHosteller,
	}
	p := Placement{Authority: assignee}
	for _, opt := range opts {
		opt(&s, &p)
	}
	c, rec, err := NewComplaint(s, p, DefaultPriorityPolicy())
	require.NoError(t, err)
	c.PullEvents()
	return c, rec
}

// fakeDirectory is an in-memory authority.Repository.
type fakeDirectory struct {
	byID map[uint]*authority.Authority
}

func newFakeDirectory(authorities ...*authority.Authority) *fakeDirectory {
	d := &fakeDirectory{byID: make(map[uint]*authority.Authority)}
	for _, a := range authorities {
		d.byID[a.ID()] = a
	}
	return d
}

func (d *fakeDirectory) GetByID(_ context.Context, id uint) (*authority.Authority, error) {
	if a, ok := d.byID[id]; ok {
		return a, nil
	}
	return nil, authority.ErrAuthorityNotFound
}

func (d *fakeDirectory) FindActive(_ context.Context, t authority.Type, departmentID *uint) (*authority.Authority, error) {
	var found *authority.Authority
	for _, a := range d.byID {
		if a.Type() != t || !a.IsActive() {
			continue
		}
		if departmentID != nil && (a.DepartmentID() == nil || *a.DepartmentID() != *departmentID) {
			continue
		}
		if found == nil || a.ID() < found.ID() {
			found = a
		}
	}
	return found, nil
}

func (d *fakeDirectory) Create(_ context.Context, a *authority.Authority) error {
	d.byID[a.ID()] = a
	return nil
}
