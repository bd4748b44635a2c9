package authority

import (
	"slices"

	"campusvoice/internal/domain/campus"
)

// Scope is the audience an authority may target or serve, per dimension.
// A nil slice leaves the dimension unrestricted; an empty non-nil slice
// admits nothing.
type Scope struct {
	Genders     []campus.Gender
	StayTypes   []campus.StayType
	Departments []uint
}

func (s Scope) AllowsGender(g campus.Gender) bool {
	return s.Genders == nil || slices.Contains(s.Genders, g)
}

func (s Scope) AllowsStayType(st campus.StayType) bool {
	return s.StayTypes == nil || slices.Contains(s.StayTypes, st)
}

func (s Scope) AllowsDepartment(id uint) bool {
	return s.Departments == nil || slices.Contains(s.Departments, id)
}

// Admits reports whether a student with profile p falls inside the scope.
func (s Scope) Admits(p campus.Profile) bool {
	return s.AllowsGender(p.Gender) && s.AllowsStayType(p.StayType) && s.AllowsDepartment(p.DepartmentID)
}

// IsUniversal reports whether no dimension is restricted.
func (s Scope) IsUniversal() bool {
	return s.Genders == nil && s.StayTypes == nil && s.Departments == nil
}

type scopeRule struct {
	genders       []campus.Gender
	stayTypes     []campus.StayType
	ownDepartment bool
}

var (
	menOnly    = []campus.Gender{campus.GenderMale}
	womenOnly  = []campus.Gender{campus.GenderFemale}
	hostelOnly = []campus.StayType{campus.StayHostel}
)

// scopeTable is consulted both when placing hostel complaints and when
// validating notice targets.
var scopeTable = map[Type]scopeRule{
	TypeWardenMen:             {genders: menOnly, stayTypes: hostelOnly},
	TypeDeputyWardenMen:       {genders: menOnly, stayTypes: hostelOnly},
	TypeWardenWomen:           {genders: womenOnly, stayTypes: hostelOnly},
	TypeDeputyWardenWomen:     {genders: womenOnly, stayTypes: hostelOnly},
	TypeSeniorDeputyWarden:    {stayTypes: hostelOnly},
	TypeHOD:                   {ownDepartment: true},
	TypeDisciplinaryCommittee: {},
	TypeAdminOfficer:          {},
	TypeAdmin:                 {},
}

// ScopeOf derives the permitted scope of type t. departmentID is only read
// for department-scoped types; a department-scoped type without a department
// admits no department.
func ScopeOf(t Type, departmentID *uint) Scope {
	rule, ok := scopeTable[t]
	if !ok {
		return Scope{Genders: []campus.Gender{}, StayTypes: []campus.StayType{}, Departments: []uint{}}
	}

	scope := Scope{
		Genders:   slices.Clone(rule.genders),
		StayTypes: slices.Clone(rule.stayTypes),
	}
	if rule.ownDepartment {
		scope.Departments = []uint{}
		if departmentID != nil {
			scope.Departments = []uint{*departmentID}
		}
	}
	return scope
}
