package usecases

import (
	"context"
	stderrors "errors"

	"campusvoice/internal/application/complaint/dto"
	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/shared/logger"
	"campusvoice/internal/shared/utils"
)

type GetComplaintQuery struct {
	ComplaintID string
	Caller      Caller
}

// GetComplaintUseCase returns one complaint. Authority callers also get the
// submitter's identity, passed through RedactIdentity.
type GetComplaintUseCase struct {
	access viewAccess
	logger logger.Interface
}

func NewGetComplaintUseCase(
	complaints complaint.Repository,
	students campus.StudentRepository,
	authorities authority.Repository,
	logger logger.Interface,
) *GetComplaintUseCase {
	return &GetComplaintUseCase{
		access: viewAccess{complaints: complaints, students: students, authorities: authorities},
		logger: logger,
	}
}

func (uc *GetComplaintUseCase) Execute(ctx context.Context, query GetComplaintQuery) (*dto.ComplaintDTO, error) {
	c, viewer, err := uc.access.load(ctx, query.ComplaintID, query.Caller)
	if err != nil {
		return nil, err
	}

	result := dto.ToComplaintDTO(c)
	if viewer == nil {
		return result, nil
	}

	identity := campus.Identity{RollNo: c.SubmitterID()}
	submitter, err := uc.access.students.GetByRollNo(ctx, c.SubmitterID())
	switch {
	case err == nil:
		identity = submitter.Identity()
	case stderrors.Is(err, campus.ErrStudentNotFound):
		uc.logger.Warnw("submitter missing from directory",
			"complaint_id", c.ID(),
			"student_id", c.SubmitterID(),
		)
	default:
		return nil, err
	}
	result.Submitter = dto.ToSubmitterDTO(c.RedactIdentity(identity, viewer))
	return result, nil
}

type ListFeedQuery struct {
	StudentID     string
	IncludeClosed bool
	Category      *vo.Category
	Status        *vo.Status
	Page          int
	PageSize      int
}

type ListFeedResult struct {
	Complaints []*dto.ComplaintDTO `json:"complaints"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

type ListFeedUseCase struct {
	complaints complaint.Repository
	students   campus.StudentRepository
	logger     logger.Interface
}

func NewListFeedUseCase(complaints complaint.Repository, students campus.StudentRepository, logger logger.Interface) *ListFeedUseCase {
	return &ListFeedUseCase{complaints: complaints, students: students, logger: logger}
}

func (uc *ListFeedUseCase) Execute(ctx context.Context, query ListFeedQuery) (*ListFeedResult, error) {
	student, err := loadActiveStudent(ctx, uc.students, query.StudentID)
	if err != nil {
		return nil, err
	}
	p := utils.ValidatePagination(query.Page, query.PageSize)

	items, total, err := uc.complaints.ListFeed(ctx, complaint.FeedQuery{
		Viewer:        complaint.ViewerOf(student),
		IncludeClosed: query.IncludeClosed,
		Category:      query.Category,
		Status:        query.Status,
		Page:          p.Page,
		PageSize:      p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list feed", "student_id", student.RollNo(), "error", err)
		return nil, err
	}

	result := &ListFeedResult{
		Complaints: make([]*dto.ComplaintDTO, len(items)),
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
	for i, c := range items {
		result.Complaints[i] = dto.ToComplaintDTO(c)
	}
	return result, nil
}

type HistoryQuery struct {
	ComplaintID string
	Caller      Caller
}

type StatusHistoryUseCase struct {
	access        viewAccess
	statusUpdates complaint.StatusUpdateRepository
}

func NewStatusHistoryUseCase(
	complaints complaint.Repository,
	statusUpdates complaint.StatusUpdateRepository,
	students campus.StudentRepository,
	authorities authority.Repository,
) *StatusHistoryUseCase {
	return &StatusHistoryUseCase{
		access:        viewAccess{complaints: complaints, students: students, authorities: authorities},
		statusUpdates: statusUpdates,
	}
}

func (uc *StatusHistoryUseCase) Execute(ctx context.Context, query HistoryQuery) ([]dto.StatusUpdateDTO, error) {
	c, _, err := uc.access.load(ctx, query.ComplaintID, query.Caller)
	if err != nil {
		return nil, err
	}
	updates, err := uc.statusUpdates.ListByComplaint(ctx, c.ID())
	if err != nil {
		return nil, err
	}
	out := make([]dto.StatusUpdateDTO, len(updates))
	for i, u := range updates {
		out[i] = dto.ToStatusUpdateDTO(u)
	}
	return out, nil
}

type EscalationHistoryUseCase struct {
	access      viewAccess
	escalations complaint.EscalationRepository
}

func NewEscalationHistoryUseCase(
	complaints complaint.Repository,
	escalations complaint.EscalationRepository,
	students campus.StudentRepository,
	authorities authority.Repository,
) *EscalationHistoryUseCase {
	return &EscalationHistoryUseCase{
		access:      viewAccess{complaints: complaints, students: students, authorities: authorities},
		escalations: escalations,
	}
}

func (uc *EscalationHistoryUseCase) Execute(ctx context.Context, query HistoryQuery) ([]dto.EscalationRecordDTO, error) {
	c, _, err := uc.access.load(ctx, query.ComplaintID, query.Caller)
	if err != nil {
		return nil, err
	}
	chain, err := uc.escalations.ListByComplaint(ctx, c.ID())
	if err != nil {
		return nil, err
	}
	out := make([]dto.EscalationRecordDTO, len(chain))
	for i, r := range chain {
		out[i] = dto.ToEscalationRecordDTO(r)
	}
	return out, nil
}

type IsVisibleQuery struct {
	ComplaintID   string
	StudentID     string
	IncludeClosed bool
}

type IsVisibleUseCase struct {
	complaints complaint.Repository
	students   campus.StudentRepository
}

func NewIsVisibleUseCase(complaints complaint.Repository, students campus.StudentRepository) *IsVisibleUseCase {
	return &IsVisibleUseCase{complaints: complaints, students: students}
}

func (uc *IsVisibleUseCase) Execute(ctx context.Context, query IsVisibleQuery) (bool, error) {
	student, err := loadActiveStudent(ctx, uc.students, query.StudentID)
	if err != nil {
		return false, err
	}
	c, err := uc.complaints.GetByID(ctx, query.ComplaintID)
	if err != nil {
		return false, err
	}
	return c.IsVisibleTo(complaint.ViewerOf(student), query.IncludeClosed), nil
}
