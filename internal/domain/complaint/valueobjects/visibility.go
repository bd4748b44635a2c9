package valueobjects

import "fmt"

type Visibility string

const (
	VisibilityPublic     Visibility = "Public"
	VisibilityDepartment Visibility = "Department"
	VisibilityPrivate    Visibility = "Private"
)

func (v Visibility) String() string {
	return string(v)
}

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityDepartment, VisibilityPrivate:
		return true
	}
	return false
}

func NewVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid visibility: %s", s)
	}
	return v, nil
}
