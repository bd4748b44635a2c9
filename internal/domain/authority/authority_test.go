package authority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/domain/campus"
)

func uintPtr(v uint) *uint { return &v }

func TestType_Successor(t *testing.T) {
	tests := []struct {
		from    Type
		want    Type
		hasNext bool
	}{
		{TypeWardenMen, TypeDeputyWardenMen, true},
		{TypeWardenWomen, TypeDeputyWardenWomen, true},
		{TypeDeputyWardenMen, TypeSeniorDeputyWarden, true},
		{TypeDeputyWardenWomen, TypeSeniorDeputyWarden, true},
		{TypeSeniorDeputyWarden, TypeAdmin, true},
		{TypeHOD, TypeAdmin, true},
		{TypeDisciplinaryCommittee, TypeAdmin, true},
		{TypeAdminOfficer, TypeAdmin, true},
		{TypeAdmin, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			got, ok := tt.from.Successor()
			assert.Equal(t, tt.hasNext, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestType_SuccessorOutranks(t *testing.T) {
	for _, typ := range AllTypes() {
		next, ok := typ.Successor()
		if !ok {
			continue
		}
		assert.Greater(t, next.Rank(), typ.Rank(), "%s -> %s", typ, next)
	}
}

func TestScopeOf(t *testing.T) {
	maleHosteller := campus.Profile{Gender: campus.GenderMale, StayType: campus.StayHostel, DepartmentID: 1}
	femaleHosteller := campus.Profile{Gender: campus.GenderFemale, StayType: campus.StayHostel, DepartmentID: 2}
	femaleDayScholar := campus.Profile{Gender: campus.GenderFemale, StayType: campus.StayDayScholar, DepartmentID: 1}

	tests := []struct {
		name   string
		scope  Scope
		admits []campus.Profile
		denies []campus.Profile
	}{
		{
			name:   "men's warden",
			scope:  ScopeOf(TypeWardenMen, nil),
			admits: []campus.Profile{maleHosteller},
			denies: []campus.Profile{femaleHosteller, femaleDayScholar},
		},
		{
			name:   "women's deputy warden",
			scope:  ScopeOf(TypeDeputyWardenWomen, nil),
			admits: []campus.Profile{femaleHosteller},
			denies: []campus.Profile{maleHosteller, femaleDayScholar},
		},
		{
			name:   "senior deputy warden",
			scope:  ScopeOf(TypeSeniorDeputyWarden, nil),
			admits: []campus.Profile{maleHosteller, femaleHosteller},
			denies: []campus.Profile{femaleDayScholar},
		},
		{
			name:   "hod of department 1",
			scope:  ScopeOf(TypeHOD, uintPtr(1)),
			admits: []campus.Profile{maleHosteller, femaleDayScholar},
			denies: []campus.Profile{femaleHosteller},
		},
		{
			name:   "hod without department",
			scope:  ScopeOf(TypeHOD, nil),
			denies: []campus.Profile{maleHosteller, femaleHosteller, femaleDayScholar},
		},
		{
			name:   "admin",
			scope:  ScopeOf(TypeAdmin, nil),
			admits: []campus.Profile{maleHosteller, femaleHosteller, femaleDayScholar},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range tt.admits {
				assert.True(t, tt.scope.Admits(p), "%+v", p)
			}
			for _, p := range tt.denies {
				assert.False(t, tt.scope.Admits(p), "%+v", p)
			}
		})
	}

	assert.True(t, ScopeOf(TypeAdminOfficer, nil).IsUniversal())
	assert.False(t, ScopeOf(TypeWardenMen, nil).IsUniversal())
}

func TestNewAuthority(t *testing.T) {
	_, err := NewAuthority("Dr. Rao", "hod.cse@campus.edu", TypeHOD, nil)
	assert.Error(t, err)

	_, err = NewAuthority("Warden", "w@campus.edu", TypeWardenMen, uintPtr(3))
	assert.Error(t, err)

	a, err := NewAuthority("Dr. Rao", "hod.cse@campus.edu", TypeHOD, uintPtr(3))
	require.NoError(t, err)
	assert.True(t, a.IsActive())
	assert.Equal(t, TypeHOD.Rank(), a.Level())
	assert.Equal(t, []uint{3}, a.Scope().Departments)
}

func TestAuthority_Controls(t *testing.T) {
	now := time.Now()
	warden, err := ReconstructAuthority(7, "Warden", "", TypeWardenMen, nil, 1, true, now)
	require.NoError(t, err)
	admin, err := ReconstructAuthority(1, "Admin", "", TypeAdmin, nil, 4, true, now)
	require.NoError(t, err)
	retired, err := ReconstructAuthority(2, "Old Admin", "", TypeAdmin, nil, 4, false, now)
	require.NoError(t, err)

	assert.True(t, warden.Controls(7))
	assert.False(t, warden.Controls(8))
	assert.True(t, admin.Controls(8))
	assert.False(t, retired.Controls(8))

	var missing *Authority
	assert.False(t, missing.Controls(7))
}
