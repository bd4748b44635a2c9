package authority

import "fmt"

// Type identifies an authority's role. It fixes the authority's escalation
// successor and the audience it may broadcast to.
type Type string

const (
	TypeWardenMen             Type = "Warden-Men"
	TypeWardenWomen           Type = "Warden-Women"
	TypeDeputyWardenMen       Type = "Deputy-Warden-Men"
	TypeDeputyWardenWomen     Type = "Deputy-Warden-Women"
	TypeSeniorDeputyWarden    Type = "Senior-Deputy-Warden"
	TypeHOD                   Type = "HOD"
	TypeDisciplinaryCommittee Type = "Disciplinary-Committee"
	TypeAdminOfficer          Type = "Admin-Officer"
	TypeAdmin                 Type = "Admin"
)

// successors is the escalation chain. Types without an entry are the top.
var successors = map[Type]Type{
	TypeWardenMen:             TypeDeputyWardenMen,
	TypeWardenWomen:           TypeDeputyWardenWomen,
	TypeDeputyWardenMen:       TypeSeniorDeputyWarden,
	TypeDeputyWardenWomen:     TypeSeniorDeputyWarden,
	TypeSeniorDeputyWarden:    TypeAdmin,
	TypeHOD:                   TypeAdmin,
	TypeDisciplinaryCommittee: TypeAdmin,
	TypeAdminOfficer:          TypeAdmin,
}

// ranks orders types by seniority; a successor always outranks its predecessor.
var ranks = map[Type]int{
	TypeWardenMen:             1,
	TypeWardenWomen:           1,
	TypeAdminOfficer:          1,
	TypeDeputyWardenMen:       2,
	TypeDeputyWardenWomen:     2,
	TypeHOD:                   2,
	TypeDisciplinaryCommittee: 2,
	TypeSeniorDeputyWarden:    3,
	TypeAdmin:                 4,
}

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	_, ok := ranks[t]
	return ok
}

// Successor returns the next type up the escalation chain.
func (t Type) Successor() (Type, bool) {
	next, ok := successors[t]
	return next, ok
}

// Rank is the default seniority level of the type.
func (t Type) Rank() int {
	return ranks[t]
}

func (t Type) IsAdmin() bool {
	return t == TypeAdmin
}

// IsDepartmentScoped reports whether authorities of this type belong to a
// single department.
func (t Type) IsDepartmentScoped() bool {
	return t == TypeHOD
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid authority type: %s", s)
	}
	return t, nil
}

// AllTypes lists every authority type in rank order.
func AllTypes() []Type {
	return []Type{
		TypeWardenMen, TypeWardenWomen, TypeAdminOfficer,
		TypeDeputyWardenMen, TypeDeputyWardenWomen, TypeHOD, TypeDisciplinaryCommittee,
		TypeSeniorDeputyWarden, TypeAdmin,
	}
}
