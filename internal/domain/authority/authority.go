// Package authority models the staff accounts complaints are routed to, the
// escalation chain between their types and the scope each type may address.
package authority

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusvoice/internal/shared/errors"
)

type Authority struct {
	id           uint
	name         string
	email        string
	authType     Type
	departmentID *uint
	level        int
	isActive     bool
	createdAt    time.Time
}

// NewAuthority validates a directory entry before it is stored. Level
// defaults to the rank of the type.
func NewAuthority(name, email string, t Type, departmentID *uint) (*Authority, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("authority name is required")
	}
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid authority type: %s", t)
	}
	if t.IsDepartmentScoped() && departmentID == nil {
		return nil, fmt.Errorf("%s requires a department", t)
	}
	if !t.IsDepartmentScoped() && departmentID != nil {
		return nil, fmt.Errorf("%s cannot belong to a department", t)
	}

	return &Authority{
		name:         name,
		email:        email,
		authType:     t,
		departmentID: departmentID,
		level:        t.Rank(),
		isActive:     true,
		createdAt:    time.Now().UTC(),
	}, nil
}

func ReconstructAuthority(
	id uint,
	name, email string,
	t Type,
	departmentID *uint,
	level int,
	isActive bool,
	createdAt time.Time,
) (*Authority, error) {
	if id == 0 {
		return nil, fmt.Errorf("authority ID cannot be zero")
	}
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid authority type: %s", t)
	}
	return &Authority{
		id:           id,
		name:         name,
		email:        email,
		authType:     t,
		departmentID: departmentID,
		level:        level,
		isActive:     isActive,
		createdAt:    createdAt,
	}, nil
}

func (a *Authority) ID() uint             { return a.id }
func (a *Authority) Name() string         { return a.name }
func (a *Authority) Email() string        { return a.email }
func (a *Authority) Type() Type           { return a.authType }
func (a *Authority) DepartmentID() *uint  { return a.departmentID }
func (a *Authority) Level() int           { return a.level }
func (a *Authority) IsActive() bool       { return a.isActive }
func (a *Authority) CreatedAt() time.Time { return a.createdAt }

func (a *Authority) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("authority ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("authority ID cannot be zero")
	}
	a.id = id
	return nil
}

func (a *Authority) Deactivate() {
	a.isActive = false
}

// IsAdmin reports whether the authority holds the Admin type. Callers that
// authorize must also check IsActive.
func (a *Authority) IsAdmin() bool {
	return a.authType.IsAdmin()
}

// Scope returns the audience this authority may address.
func (a *Authority) Scope() Scope {
	return ScopeOf(a.authType, a.departmentID)
}

// Controls reports whether an active authority is entitled to act on a
// complaint currently assigned to assignedID: either it is the assignee or
// it is an Admin.
func (a *Authority) Controls(assignedID uint) bool {
	if a == nil || !a.isActive {
		return false
	}
	return a.id == assignedID || a.IsAdmin()
}

// Repository is the read side of the authority directory.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*Authority, error)
	// FindActive returns the active authority of type t, restricted to
	// departmentID when non-nil. It returns nil, nil when there is none.
	FindActive(ctx context.Context, t Type, departmentID *uint) (*Authority, error)
	Create(ctx context.Context, a *Authority) error
}

// ErrAuthorityNotFound reports an unknown authority id.
var ErrAuthorityNotFound = errors.NewNotFoundError("authority not found").WithReason("authority_not_found")

// ErrNoAuthorityAvailable reports that no active authority fills a slot a
// complaint must be assigned to. It is an operational condition.
var ErrNoAuthorityAvailable = errors.NewUnavailableError("no active authority available").WithReason("no_authority_available")
