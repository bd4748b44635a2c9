package notice

import (
	"slices"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/shared/errors"
)

// Targets is the audience of a notice. An empty dimension places no
// restriction on that axis.
type Targets struct {
	Genders     []campus.Gender
	StayTypes   []campus.StayType
	Departments []uint
}

// IsEmpty reports whether the notice addresses every student.
func (t Targets) IsEmpty() bool {
	return len(t.Genders) == 0 && len(t.StayTypes) == 0 && len(t.Departments) == 0
}

// Admits reports whether a student with profile p is addressed.
func (t Targets) Admits(p campus.Profile) bool {
	if len(t.Genders) > 0 && !slices.Contains(t.Genders, p.Gender) {
		return false
	}
	if len(t.StayTypes) > 0 && !slices.Contains(t.StayTypes, p.StayType) {
		return false
	}
	if len(t.Departments) > 0 && !slices.Contains(t.Departments, p.DepartmentID) {
		return false
	}
	return true
}

// ResolveTargets checks requested against scope and fills every empty
// requested dimension that scope restricts with the scope's own values.
// Values outside scope are rejected, never clamped.
func ResolveTargets(scope authority.Scope, requested Targets) (Targets, error) {
	genders, err := resolveDimension("gender", scope.Genders, requested.Genders)
	if err != nil {
		return Targets{}, err
	}
	stayTypes, err := resolveDimension("stay type", scope.StayTypes, requested.StayTypes)
	if err != nil {
		return Targets{}, err
	}
	departments, err := resolveDimension("department", scope.Departments, requested.Departments)
	if err != nil {
		return Targets{}, err
	}
	return Targets{Genders: genders, StayTypes: stayTypes, Departments: departments}, nil
}

func resolveDimension[T comparable](name string, permitted, requested []T) ([]T, error) {
	requested = compact(requested)
	if permitted == nil {
		return requested, nil
	}
	// A restricted dimension with nothing permitted would otherwise
	// auto-fill to "everyone".
	if len(permitted) == 0 {
		return nil, ErrScopeViolation.WithDetails("no %s may be targeted", name)
	}
	if len(requested) == 0 {
		return slices.Clone(permitted), nil
	}
	for _, v := range requested {
		if !slices.Contains(permitted, v) {
			return nil, ErrScopeViolation.WithDetails("%s %v is not permitted", name, v)
		}
	}
	return requested, nil
}

// compact drops duplicates while keeping first-seen order.
func compact[T comparable](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func validateTargets(t Targets) error {
	for _, g := range t.Genders {
		if !g.IsValid() {
			return errors.NewValidationError("invalid target gender", string(g))
		}
	}
	for _, st := range t.StayTypes {
		if !st.IsValid() {
			return errors.NewValidationError("invalid target stay type", string(st))
		}
	}
	for _, d := range t.Departments {
		if d == 0 {
			return errors.NewValidationError("invalid target department")
		}
	}
	return nil
}
