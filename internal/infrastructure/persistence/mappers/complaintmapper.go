package mappers

import (
	"fmt"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/infrastructure/persistence/models"
)

// ComplaintMapper handles the conversion between the complaint aggregate,
// its child records and their persistence models.
type ComplaintMapper interface {
	ToModel(c *complaint.Complaint) *models.ComplaintModel
	ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error)

	StatusUpdateToModel(u *complaint.StatusUpdate) *models.StatusUpdateModel
	StatusUpdateToDomain(model *models.StatusUpdateModel) (*complaint.StatusUpdate, error)

	EscalationToModel(r *complaint.EscalationRecord) *models.EscalationRecordModel
	EscalationToDomain(model *models.EscalationRecordModel) (*complaint.EscalationRecord, error)

	VoteToModel(v *complaint.Vote) *models.VoteModel
	VoteToDomain(model *models.VoteModel) (*complaint.Vote, error)
}

type ComplaintMapperImpl struct{}

func NewComplaintMapper() ComplaintMapper {
	return &ComplaintMapperImpl{}
}

func (m *ComplaintMapperImpl) ToModel(c *complaint.Complaint) *models.ComplaintModel {
	submitter := c.Submitter()
	return &models.ComplaintModel{
		ID:                    c.ID(),
		Category:              c.Category().String(),
		OriginalText:          c.OriginalText(),
		RephrasedText:         c.RephrasedText(),
		Visibility:            c.Visibility().String(),
		Status:                c.Status().String(),
		BaseTier:              c.BaseTier().String(),
		PriorityTier:          c.PriorityTier().String(),
		PriorityScore:         c.PriorityScore(),
		Upvotes:               c.Upvotes(),
		Downvotes:             c.Downvotes(),
		IsMarkedAsSpam:        c.IsMarkedAsSpam(),
		AssignedAuthorityID:   c.AssignedAuthorityID(),
		DepartmentID:          c.DepartmentID(),
		IsCrossDepartment:     c.IsCrossDepartment(),
		SubmitterID:           c.SubmitterID(),
		SubmitterGender:       submitter.Gender.String(),
		SubmitterStayType:     submitter.StayType.String(),
		SubmitterDepartmentID: submitter.DepartmentID,
		SubmittedAt:           c.SubmittedAt().UnixMilli(),
		UpdatedAt:             c.UpdatedAt().UnixMilli(),
		ResolvedAt:            timeToMillisPtr(c.ResolvedAt()),
		AcknowledgedAt:        timeToMillisPtr(c.AcknowledgedAt()),
		Version:               c.Version(),
	}
}

func (m *ComplaintMapperImpl) ToDomain(model *models.ComplaintModel) (*complaint.Complaint, error) {
	submitter := campus.Profile{
		Gender:       campus.Gender(model.SubmitterGender),
		StayType:     campus.StayType(model.SubmitterStayType),
		DepartmentID: model.SubmitterDepartmentID,
	}

	c, err := complaint.ReconstructComplaint(
		model.ID,
		vo.Category(model.Category),
		model.OriginalText,
		model.RephrasedText,
		vo.Visibility(model.Visibility),
		vo.Status(model.Status),
		vo.PriorityTier(model.BaseTier),
		vo.PriorityTier(model.PriorityTier),
		model.PriorityScore,
		model.Upvotes,
		model.Downvotes,
		model.IsMarkedAsSpam,
		model.AssignedAuthorityID,
		model.DepartmentID,
		model.IsCrossDepartment,
		model.SubmitterID,
		submitter,
		millisToTime(model.SubmittedAt),
		millisToTime(model.UpdatedAt),
		millisToTimePtr(model.ResolvedAt),
		millisToTimePtr(model.AcknowledgedAt),
		model.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct complaint %s: %w", model.ID, err)
	}
	return c, nil
}

func (m *ComplaintMapperImpl) StatusUpdateToModel(u *complaint.StatusUpdate) *models.StatusUpdateModel {
	return &models.StatusUpdateModel{
		ID:          u.ID(),
		ComplaintID: u.ComplaintID(),
		OldStatus:   u.OldStatus().String(),
		NewStatus:   u.NewStatus().String(),
		ActorID:     u.ActorID(),
		Reason:      u.Reason(),
		CreatedAt:   u.CreatedAt().UnixMilli(),
	}
}

func (m *ComplaintMapperImpl) StatusUpdateToDomain(model *models.StatusUpdateModel) (*complaint.StatusUpdate, error) {
	return complaint.ReconstructStatusUpdate(
		model.ID,
		model.ComplaintID,
		vo.Status(model.OldStatus),
		vo.Status(model.NewStatus),
		model.ActorID,
		model.Reason,
		millisToTime(model.CreatedAt),
	)
}

func (m *ComplaintMapperImpl) EscalationToModel(r *complaint.EscalationRecord) *models.EscalationRecordModel {
	model := &models.EscalationRecordModel{
		ID:            r.ID(),
		ComplaintID:   r.ComplaintID(),
		Level:         r.Level(),
		AuthorityID:   r.AuthorityID(),
		AuthorityType: r.AuthorityType().String(),
		AuthorityName: r.AuthorityName(),
		Reason:        r.Reason(),
		EscalatedBy:   r.EscalatedBy(),
		IsCurrent:     r.IsCurrent(),
		CreatedAt:     r.CreatedAt().UnixMilli(),
	}
	if r.IsCurrent() {
		key := r.ComplaintID()
		model.CurrentKey = &key
	}
	return model
}

func (m *ComplaintMapperImpl) EscalationToDomain(model *models.EscalationRecordModel) (*complaint.EscalationRecord, error) {
	return complaint.ReconstructEscalationRecord(
		model.ID,
		model.ComplaintID,
		model.Level,
		model.AuthorityID,
		authority.Type(model.AuthorityType),
		model.AuthorityName,
		model.Reason,
		model.EscalatedBy,
		model.IsCurrent,
		millisToTime(model.CreatedAt),
	)
}

func (m *ComplaintMapperImpl) VoteToModel(v *complaint.Vote) *models.VoteModel {
	return &models.VoteModel{
		ID:          v.ID(),
		ComplaintID: v.ComplaintID(),
		StudentID:   v.StudentID(),
		VoteType:    v.VoteType().String(),
		CreatedAt:   v.CreatedAt().UnixMilli(),
		UpdatedAt:   v.UpdatedAt().UnixMilli(),
	}
}

func (m *ComplaintMapperImpl) VoteToDomain(model *models.VoteModel) (*complaint.Vote, error) {
	return complaint.ReconstructVote(
		model.ID,
		model.ComplaintID,
		model.StudentID,
		vo.VoteType(model.VoteType),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
