package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/infrastructure/persistence/mappers"
	"campusvoice/internal/infrastructure/persistence/models"
	"campusvoice/internal/shared/db"
	"campusvoice/internal/shared/errors"
)

type AuthorityRepository struct {
	db     *gorm.DB
	mapper mappers.DirectoryMapper
}

func NewAuthorityRepository(db *gorm.DB) *AuthorityRepository {
	return &AuthorityRepository{
		db:     db,
		mapper: mappers.NewDirectoryMapper(),
	}
}

func (r *AuthorityRepository) GetByID(ctx context.Context, id uint) (*authority.Authority, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.AuthorityModel
	if err := tx.First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authority.ErrAuthorityNotFound
		}
		return nil, fmt.Errorf("failed to find authority: %w", err)
	}
	return r.mapper.AuthorityToDomain(&model)
}

// FindActive picks the lowest-id active holder of t so repeated placements
// of the same slot are deterministic.
func (r *AuthorityRepository) FindActive(ctx context.Context, t authority.Type, departmentID *uint) (*authority.Authority, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Scopes(db.ActiveOnly()).Where("type = ?", t.String())
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}

	var model models.AuthorityModel
	if err := query.Order("id ASC").First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active authority: %w", err)
	}
	return r.mapper.AuthorityToDomain(&model)
}

// FindByEmail returns nil when no authority uses email.
func (r *AuthorityRepository) FindByEmail(ctx context.Context, email string) (*authority.Authority, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.AuthorityModel
	if err := tx.Where("email = ?", strings.TrimSpace(email)).Order("id ASC").First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find authority by email: %w", err)
	}
	return r.mapper.AuthorityToDomain(&model)
}

func (r *AuthorityRepository) Create(ctx context.Context, a *authority.Authority) error {
	model := r.mapper.AuthorityToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create authority: %w", err)
	}
	return a.SetID(model.ID)
}

type StudentRepository struct {
	db     *gorm.DB
	mapper mappers.DirectoryMapper
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{
		db:     db,
		mapper: mappers.NewDirectoryMapper(),
	}
}

func (r *StudentRepository) GetByRollNo(ctx context.Context, rollNo string) (*campus.Student, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.StudentModel
	if err := tx.Where("roll_no = ?", rollNo).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, campus.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return r.mapper.StudentToDomain(&model)
}

// Upsert stores or replaces a directory entry. Used by seeding.
func (r *StudentRepository) Upsert(ctx context.Context, s *campus.Student) error {
	tx := db.GetTxFromContext(ctx, r.db)
	p := s.Profile()

	model := &models.StudentModel{
		RollNo:       s.RollNo(),
		Name:         s.Name(),
		Email:        s.Email(),
		Gender:       p.Gender.String(),
		StayType:     p.StayType.String(),
		DepartmentID: p.DepartmentID,
		IsActive:     s.IsActive(),
	}
	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save student: %w", err)
	}
	return nil
}

type DepartmentRepository struct {
	db     *gorm.DB
	mapper mappers.DirectoryMapper
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{
		db:     db,
		mapper: mappers.NewDirectoryMapper(),
	}
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uint) (*campus.Department, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.DepartmentModel
	if err := tx.First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, campus.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return r.mapper.DepartmentToDomain(&model), nil
}

// GetByCode matches codes case-insensitively; codes are stored upper-case.
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*campus.Department, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.DepartmentModel
	if err := tx.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, campus.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return r.mapper.DepartmentToDomain(&model), nil
}

// Create stores d and assigns its id. Duplicate codes are a conflict.
func (r *DepartmentRepository) Create(ctx context.Context, d *campus.Department) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := &models.DepartmentModel{
		Code: strings.ToUpper(strings.TrimSpace(d.Code)),
		Name: d.Name,
	}
	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("department code already exists", model.Code)
		}
		return fmt.Errorf("failed to create department: %w", err)
	}
	d.ID = model.ID
	d.Code = model.Code
	return nil
}
