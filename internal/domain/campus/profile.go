// Package campus models the students and departments the engine reads from
// the campus directory.
package campus

import "fmt"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func NewGender(s string) (Gender, error) {
	g := Gender(s)
	if !g.IsValid() {
		return "", fmt.Errorf("invalid gender: %s", s)
	}
	return g, nil
}

type StayType string

const (
	StayHostel     StayType = "Hostel"
	StayDayScholar StayType = "Day Scholar"
)

func (s StayType) String() string { return string(s) }

func (s StayType) IsValid() bool {
	return s == StayHostel || s == StayDayScholar
}

func NewStayType(s string) (StayType, error) {
	st := StayType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid stay type: %s", s)
	}
	return st, nil
}

// Profile is the set of student attributes that drive routing, visibility
// and notice targeting. Complaints keep a copy taken at submission time.
type Profile struct {
	Gender       Gender
	StayType     StayType
	DepartmentID uint
}

func (p Profile) IsHosteller() bool {
	return p.StayType == StayHostel
}
