package usecases

import (
	"context"

	"campusvoice/internal/application/notice/dto"
	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/notice"
	"campusvoice/internal/shared/biztime"
	"campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/logger"
)

// ListNoticesQuery names the caller. Students get the notices addressed to
// them; authorities get every live notice.
type ListNoticesQuery struct {
	StudentID   string
	AuthorityID uint
}

type ListNoticesUseCase struct {
	notices     notice.Repository
	students    campus.StudentRepository
	authorities authority.Repository
	logger      logger.Interface
}

func NewListNoticesUseCase(
	notices notice.Repository,
	students campus.StudentRepository,
	authorities authority.Repository,
	logger logger.Interface,
) *ListNoticesUseCase {
	return &ListNoticesUseCase{
		notices:     notices,
		students:    students,
		authorities: authorities,
		logger:      logger,
	}
}

func (uc *ListNoticesUseCase) Execute(ctx context.Context, query ListNoticesQuery) ([]*dto.NoticeDTO, error) {
	now := biztime.NowUTC()

	switch {
	case query.AuthorityID != 0:
		if _, err := uc.authorities.GetByID(ctx, query.AuthorityID); err != nil {
			return nil, err
		}
		live, err := uc.notices.ListActive(ctx, now)
		if err != nil {
			return nil, err
		}
		return dto.ToNoticeDTOList(live), nil

	case query.StudentID != "":
		student, err := uc.students.GetByRollNo(ctx, query.StudentID)
		if err != nil {
			return nil, err
		}
		if !student.IsActive() {
			return nil, errors.ErrInactiveAccount
		}
		live, err := uc.notices.ListActive(ctx, now)
		if err != nil {
			uc.logger.Errorw("failed to list notices", "student_id", query.StudentID, "error", err)
			return nil, err
		}
		visible := make([]*notice.Notice, 0, len(live))
		for _, n := range live {
			if n.VisibleTo(student.Profile(), now) {
				visible = append(visible, n)
			}
		}
		return dto.ToNoticeDTOList(visible), nil

	default:
		return nil, errors.ErrMissingIdentity
	}
}
