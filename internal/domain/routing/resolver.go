// Package routing decides which authority is initially accountable for a
// newly classified complaint.
package routing

import (
	"context"
	"strings"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/shared/errors"
)

var (
	ErrIneligibleSubmitter = errors.NewValidationError("submitter is not eligible for this category").WithReason("ineligible_submitter")
	ErrUnknownDepartment   = errors.NewValidationError("department could not be resolved").WithReason("unknown_department")
)

// DepartmentFallback selects what happens to a Department complaint that
// arrives without a department code.
type DepartmentFallback string

const (
	FallbackSubmitter DepartmentFallback = "submitter"
	FallbackReject    DepartmentFallback = "reject"
)

// hostelWardens maps each hostel category to the authority type that owns it.
var hostelWardens = map[vo.Category]authority.Type{
	vo.CategoryMensHostel:   authority.TypeWardenMen,
	vo.CategoryWomensHostel: authority.TypeWardenWomen,
}

// Request is the input of placement.
type Request struct {
	Category       vo.Category
	Submitter      campus.Profile
	DepartmentCode string
}

// Resolver maps a request onto one active authority.
type Resolver struct {
	authorities authority.Repository
	departments campus.DepartmentRepository
	fallback    DepartmentFallback
}

func NewResolver(authorities authority.Repository, departments campus.DepartmentRepository, fallback DepartmentFallback) *Resolver {
	if fallback != FallbackReject {
		fallback = FallbackSubmitter
	}
	return &Resolver{authorities: authorities, departments: departments, fallback: fallback}
}

// Resolve returns the placement for req. An empty slot is reported as
// authority.ErrNoAuthorityAvailable and is never filled by an Admin.
func (r *Resolver) Resolve(ctx context.Context, req Request) (complaint.Placement, error) {
	switch req.Category {
	case vo.CategoryMensHostel, vo.CategoryWomensHostel:
		return r.resolveHostel(ctx, req)
	case vo.CategoryDepartment:
		return r.resolveDepartment(ctx, req)
	case vo.CategoryGeneral:
		return r.resolveSingle(ctx, authority.TypeAdminOfficer)
	case vo.CategoryDisciplinaryCommittee:
		return r.resolveSingle(ctx, authority.TypeDisciplinaryCommittee)
	default:
		return complaint.Placement{}, errors.NewValidationError("invalid category", string(req.Category))
	}
}

// resolveHostel requires the submitter to fall inside the warden's scope,
// which pins both gender and stay type.
func (r *Resolver) resolveHostel(ctx context.Context, req Request) (complaint.Placement, error) {
	wardenType := hostelWardens[req.Category]
	scope := authority.ScopeOf(wardenType, nil)
	if !scope.AllowsStayType(req.Submitter.StayType) {
		return complaint.Placement{}, ErrIneligibleSubmitter.WithDetails("%s requires a hostel resident", req.Category)
	}
	if !scope.AllowsGender(req.Submitter.Gender) {
		return complaint.Placement{}, ErrIneligibleSubmitter.WithDetails("%s is not open to %s students", req.Category, req.Submitter.Gender)
	}
	return r.resolveSingle(ctx, wardenType)
}

func (r *Resolver) resolveDepartment(ctx context.Context, req Request) (complaint.Placement, error) {
	targetID, err := r.targetDepartment(ctx, req)
	if err != nil {
		return complaint.Placement{}, err
	}

	hod, err := r.authorities.FindActive(ctx, authority.TypeHOD, &targetID)
	if err != nil {
		return complaint.Placement{}, err
	}
	if hod == nil {
		return complaint.Placement{}, authority.ErrNoAuthorityAvailable.WithDetails("HOD of department %d", targetID)
	}
	return complaint.Placement{
		Authority:         hod,
		DepartmentID:      &targetID,
		IsCrossDepartment: targetID != req.Submitter.DepartmentID,
	}, nil
}

func (r *Resolver) targetDepartment(ctx context.Context, req Request) (uint, error) {
	code := strings.TrimSpace(req.DepartmentCode)
	if code == "" {
		if r.fallback == FallbackReject {
			return 0, ErrUnknownDepartment.WithDetails("no department code supplied")
		}
		if req.Submitter.DepartmentID == 0 {
			return 0, ErrUnknownDepartment.WithDetails("submitter has no department")
		}
		return req.Submitter.DepartmentID, nil
	}

	dept, err := r.departments.GetByCode(ctx, code)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return 0, ErrUnknownDepartment.WithDetails("department code %q", code)
		}
		return 0, err
	}
	return dept.ID, nil
}

func (r *Resolver) resolveSingle(ctx context.Context, t authority.Type) (complaint.Placement, error) {
	a, err := r.authorities.FindActive(ctx, t, nil)
	if err != nil {
		return complaint.Placement{}, err
	}
	if a == nil {
		return complaint.Placement{}, authority.ErrNoAuthorityAvailable.WithDetails("%s", t)
	}
	return complaint.Placement{Authority: a}, nil
}
