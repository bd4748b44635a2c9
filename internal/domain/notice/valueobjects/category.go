package valueobjects

import "fmt"

type Category string

const (
	CategoryGeneral   Category = "General"
	CategoryAcademic  Category = "Academic"
	CategoryHostel    Category = "Hostel"
	CategoryEvent     Category = "Event"
	CategoryEmergency Category = "Emergency"
)

var validCategories = map[Category]bool{
	CategoryGeneral:   true,
	CategoryAcademic:  true,
	CategoryHostel:    true,
	CategoryEvent:     true,
	CategoryEmergency: true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid notice category: %s", s)
	}
	return c, nil
}
