package valueobjects

import (
	"fmt"

	"campusvoice/internal/domain/campus"
)

type Category string

const (
	CategoryMensHostel            Category = "Men's Hostel"
	CategoryWomensHostel          Category = "Women's Hostel"
	CategoryGeneral               Category = "General"
	CategoryDepartment            Category = "Department"
	CategoryDisciplinaryCommittee Category = "Disciplinary Committee"
)

var validCategories = map[Category]bool{
	CategoryMensHostel:            true,
	CategoryWomensHostel:          true,
	CategoryGeneral:               true,
	CategoryDepartment:            true,
	CategoryDisciplinaryCommittee: true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func (c Category) IsHostel() bool {
	return c == CategoryMensHostel || c == CategoryWomensHostel
}

// HostelGender returns the residents' gender of a hostel category.
func (c Category) HostelGender() (campus.Gender, bool) {
	switch c {
	case CategoryMensHostel:
		return campus.GenderMale, true
	case CategoryWomensHostel:
		return campus.GenderFemale, true
	}
	return "", false
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid complaint category: %s", s)
	}
	return c, nil
}
