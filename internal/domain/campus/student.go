package campus

import (
	"context"
	"fmt"
	"strings"

	"campusvoice/internal/shared/errors"
)

// Student is a directory record keyed by roll number.
type Student struct {
	rollNo   string
	name     string
	email    string
	profile  Profile
	isActive bool
}

func ReconstructStudent(rollNo, name, email string, profile Profile, isActive bool) (*Student, error) {
	if strings.TrimSpace(rollNo) == "" {
		return nil, fmt.Errorf("roll number is required")
	}
	if !profile.Gender.IsValid() {
		return nil, fmt.Errorf("invalid gender: %s", profile.Gender)
	}
	if !profile.StayType.IsValid() {
		return nil, fmt.Errorf("invalid stay type: %s", profile.StayType)
	}
	return &Student{
		rollNo:   rollNo,
		name:     name,
		email:    email,
		profile:  profile,
		isActive: isActive,
	}, nil
}

func (s *Student) RollNo() string   { return s.rollNo }
func (s *Student) Name() string     { return s.name }
func (s *Student) Email() string    { return s.email }
func (s *Student) Profile() Profile { return s.profile }
func (s *Student) IsActive() bool   { return s.isActive }

// Identity returns the personally identifying fields of the student.
func (s *Student) Identity() Identity {
	return Identity{RollNo: s.rollNo, Name: s.name, Email: s.email}
}

// Identity is what authorities see of a submitter, subject to redaction.
type Identity struct {
	RollNo   string `json:"roll_no"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Redacted bool   `json:"redacted"`
}

// RedactionMarker replaces every identifying field of a redacted identity.
const RedactionMarker = "[redacted]"

func (i Identity) Redact() Identity {
	return Identity{
		RollNo:   RedactionMarker,
		Name:     RedactionMarker,
		Email:    RedactionMarker,
		Redacted: true,
	}
}

type Department struct {
	ID   uint
	Code string
	Name string
}

type StudentRepository interface {
	GetByRollNo(ctx context.Context, rollNo string) (*Student, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id uint) (*Department, error)
	GetByCode(ctx context.Context, code string) (*Department, error)
}

var (
	ErrStudentNotFound    = errors.NewNotFoundError("student not found").WithReason("student_not_found")
	ErrDepartmentNotFound = errors.NewNotFoundError("department not found").WithReason("department_not_found")
)
