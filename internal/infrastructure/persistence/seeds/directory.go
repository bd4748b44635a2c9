// Package seeds loads the campus directory (departments, authorities and
// students) from a YAML file into the database.
package seeds

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/infrastructure/repository"
	"campusvoice/internal/shared/db"
	"campusvoice/internal/shared/errors"
)

// Directory is the on-disk form of the campus directory. Departments are
// referenced by code everywhere else in the file.
type Directory struct {
	Departments []DepartmentEntry `yaml:"departments"`
	Authorities []AuthorityEntry  `yaml:"authorities"`
	Students    []StudentEntry    `yaml:"students"`
}

type DepartmentEntry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type AuthorityEntry struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Type       string `yaml:"type"`
	Department string `yaml:"department,omitempty"`
	Active     *bool  `yaml:"active,omitempty"`
}

type StudentEntry struct {
	RollNo     string `yaml:"roll_no"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Gender     string `yaml:"gender"`
	StayType   string `yaml:"stay_type"`
	Department string `yaml:"department"`
	Active     *bool  `yaml:"active,omitempty"`
}

// Result counts what a seeding run changed.
type Result struct {
	DepartmentsCreated int
	AuthoritiesCreated int
	AuthoritiesSkipped int
	StudentsSaved      int
}

// LoadDirectory decodes a directory file. Unknown keys are rejected.
func LoadDirectory(r io.Reader) (*Directory, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Directory
	if err := dec.Decode(&d); err != nil {
		if stderrors.Is(err, io.EOF) {
			return &d, nil
		}
		return nil, fmt.Errorf("failed to decode directory: %w", err)
	}
	return &d, nil
}

// SeedDirectory writes d in one transaction. It can be re-run: existing
// departments and authorities (matched by code and email) are kept, students
// are replaced.
func SeedDirectory(ctx context.Context, gdb *gorm.DB, d *Directory) (Result, error) {
	var res Result

	departments := repository.NewDepartmentRepository(gdb)
	authorities := repository.NewAuthorityRepository(gdb)
	students := repository.NewStudentRepository(gdb)

	err := db.NewTransactionManager(gdb).RunInTransaction(ctx, func(txCtx context.Context) error {
		codes := make(map[string]uint, len(d.Departments))
		for _, entry := range d.Departments {
			dept, created, err := ensureDepartment(txCtx, departments, entry)
			if err != nil {
				return err
			}
			if created {
				res.DepartmentsCreated++
			}
			codes[dept.Code] = dept.ID
		}

		lookup := func(code string) (uint, error) {
			code = strings.ToUpper(strings.TrimSpace(code))
			if id, ok := codes[code]; ok {
				return id, nil
			}
			dept, err := departments.GetByCode(txCtx, code)
			if err != nil {
				return 0, fmt.Errorf("department %q: %w", code, err)
			}
			codes[dept.Code] = dept.ID
			return dept.ID, nil
		}

		for i, entry := range d.Authorities {
			created, err := ensureAuthority(txCtx, authorities, entry, lookup)
			if err != nil {
				return fmt.Errorf("authority #%d (%s): %w", i+1, entry.Email, err)
			}
			if created {
				res.AuthoritiesCreated++
			} else {
				res.AuthoritiesSkipped++
			}
		}

		for i, entry := range d.Students {
			s, err := entry.toStudent(lookup)
			if err != nil {
				return fmt.Errorf("student #%d (%s): %w", i+1, entry.RollNo, err)
			}
			if err := students.Upsert(txCtx, s); err != nil {
				return err
			}
			res.StudentsSaved++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func ensureDepartment(ctx context.Context, repo *repository.DepartmentRepository, entry DepartmentEntry) (*campus.Department, bool, error) {
	if strings.TrimSpace(entry.Code) == "" || strings.TrimSpace(entry.Name) == "" {
		return nil, false, fmt.Errorf("department needs a code and a name")
	}

	existing, err := repo.GetByCode(ctx, entry.Code)
	if err == nil {
		return existing, false, nil
	}
	if !errors.IsNotFoundError(err) {
		return nil, false, err
	}

	dept := &campus.Department{Code: entry.Code, Name: strings.TrimSpace(entry.Name)}
	if err := repo.Create(ctx, dept); err != nil {
		return nil, false, err
	}
	return dept, true, nil
}

func ensureAuthority(ctx context.Context, repo *repository.AuthorityRepository, entry AuthorityEntry, lookup func(string) (uint, error)) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(entry.Email))
	if email == "" {
		return false, fmt.Errorf("email is required")
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	t, err := authority.NewType(strings.TrimSpace(entry.Type))
	if err != nil {
		return false, err
	}

	var deptID *uint
	if entry.Department != "" {
		id, err := lookup(entry.Department)
		if err != nil {
			return false, err
		}
		deptID = &id
	}

	a, err := authority.NewAuthority(strings.TrimSpace(entry.Name), email, t, deptID)
	if err != nil {
		return false, err
	}
	if entry.Active != nil && !*entry.Active {
		a.Deactivate()
	}
	return true, repo.Create(ctx, a)
}

func (e StudentEntry) toStudent(lookup func(string) (uint, error)) (*campus.Student, error) {
	gender, err := campus.NewGender(strings.TrimSpace(e.Gender))
	if err != nil {
		return nil, err
	}
	stay, err := campus.NewStayType(strings.TrimSpace(e.StayType))
	if err != nil {
		return nil, err
	}
	deptID, err := lookup(e.Department)
	if err != nil {
		return nil, err
	}

	active := e.Active == nil || *e.Active
	return campus.ReconstructStudent(
		strings.TrimSpace(e.RollNo),
		strings.TrimSpace(e.Name),
		strings.ToLower(strings.TrimSpace(e.Email)),
		campus.Profile{Gender: gender, StayType: stay, DepartmentID: deptID},
		active,
	)
}
