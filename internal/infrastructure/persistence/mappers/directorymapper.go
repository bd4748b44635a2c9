package mappers

import (
	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/infrastructure/persistence/models"
)

// DirectoryMapper converts authority, student and department rows.
type DirectoryMapper interface {
	AuthorityToModel(a *authority.Authority) *models.AuthorityModel
	AuthorityToDomain(model *models.AuthorityModel) (*authority.Authority, error)
	StudentToDomain(model *models.StudentModel) (*campus.Student, error)
	DepartmentToDomain(model *models.DepartmentModel) *campus.Department
}

type DirectoryMapperImpl struct{}

func NewDirectoryMapper() DirectoryMapper {
	return &DirectoryMapperImpl{}
}

func (m *DirectoryMapperImpl) AuthorityToModel(a *authority.Authority) *models.AuthorityModel {
	return &models.AuthorityModel{
		ID:           a.ID(),
		Name:         a.Name(),
		Email:        a.Email(),
		Type:         a.Type().String(),
		DepartmentID: a.DepartmentID(),
		Level:        a.Level(),
		IsActive:     a.IsActive(),
		CreatedAt:    a.CreatedAt().UnixMilli(),
	}
}

func (m *DirectoryMapperImpl) AuthorityToDomain(model *models.AuthorityModel) (*authority.Authority, error) {
	return authority.ReconstructAuthority(
		model.ID,
		model.Name,
		model.Email,
		authority.Type(model.Type),
		model.DepartmentID,
		model.Level,
		model.IsActive,
		millisToTime(model.CreatedAt),
	)
}

func (m *DirectoryMapperImpl) StudentToDomain(model *models.StudentModel) (*campus.Student, error) {
	profile := campus.Profile{
		Gender:       campus.Gender(model.Gender),
		StayType:     campus.StayType(model.StayType),
		DepartmentID: model.DepartmentID,
	}
	return campus.ReconstructStudent(model.RollNo, model.Name, model.Email, profile, model.IsActive)
}

func (m *DirectoryMapperImpl) DepartmentToDomain(model *models.DepartmentModel) *campus.Department {
	return &campus.Department{ID: model.ID, Code: model.Code, Name: model.Name}
}
