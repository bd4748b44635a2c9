package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/notice"
	vo "campusvoice/internal/domain/notice/valueobjects"
	"campusvoice/internal/infrastructure/persistence/models"
)

// NoticeMapper handles the conversion between notices and their models.
// Target sets are stored as JSON arrays; an empty set is stored as [].
type NoticeMapper interface {
	ToModel(n *notice.Notice) (*models.NoticeModel, error)
	ToDomain(model *models.NoticeModel) (*notice.Notice, error)
}

type NoticeMapperImpl struct{}

func NewNoticeMapper() NoticeMapper {
	return &NoticeMapperImpl{}
}

func (m *NoticeMapperImpl) ToModel(n *notice.Notice) (*models.NoticeModel, error) {
	targets := n.Targets()

	genders, err := encodeTargets(targets.Genders)
	if err != nil {
		return nil, fmt.Errorf("failed to encode target genders: %w", err)
	}
	stayTypes, err := encodeTargets(targets.StayTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode target stay types: %w", err)
	}
	departments, err := encodeTargets(targets.Departments)
	if err != nil {
		return nil, fmt.Errorf("failed to encode target departments: %w", err)
	}

	return &models.NoticeModel{
		ID:                n.ID(),
		AuthorityID:       n.AuthorityID(),
		Title:             n.Title(),
		Content:           n.Content(),
		ContentHTML:       n.ContentHTML(),
		Category:          n.Category().String(),
		Priority:          n.Priority().String(),
		TargetGenders:     genders,
		TargetStayTypes:   stayTypes,
		TargetDepartments: departments,
		IsActive:          n.IsActive(),
		ExpiresAt:         timeToMillisPtr(n.ExpiresAt()),
		CreatedAt:         n.CreatedAt().UnixMilli(),
		UpdatedAt:         n.UpdatedAt().UnixMilli(),
	}, nil
}

func (m *NoticeMapperImpl) ToDomain(model *models.NoticeModel) (*notice.Notice, error) {
	var targets notice.Targets
	if err := decodeTargets(model.TargetGenders, &targets.Genders); err != nil {
		return nil, fmt.Errorf("failed to decode target genders (id=%d): %w", model.ID, err)
	}
	if err := decodeTargets(model.TargetStayTypes, &targets.StayTypes); err != nil {
		return nil, fmt.Errorf("failed to decode target stay types (id=%d): %w", model.ID, err)
	}
	if err := decodeTargets(model.TargetDepartments, &targets.Departments); err != nil {
		return nil, fmt.Errorf("failed to decode target departments (id=%d): %w", model.ID, err)
	}

	return notice.ReconstructNotice(
		model.ID,
		model.AuthorityID,
		model.Title,
		model.Content,
		model.ContentHTML,
		vo.Category(model.Category),
		vo.Priority(model.Priority),
		targets,
		model.IsActive,
		millisToTimePtr(model.ExpiresAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

type targetValue interface {
	campus.Gender | campus.StayType | uint
}

func encodeTargets[T targetValue](values []T) (datatypes.JSON, error) {
	if len(values) == 0 {
		return datatypes.JSON("[]"), nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeTargets[T targetValue](raw datatypes.JSON, out *[]T) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	if len(*out) == 0 {
		*out = nil
	}
	return nil
}
