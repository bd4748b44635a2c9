package usecases

import (
	"context"

	"campusvoice/internal/application/notice/dto"
	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/notice"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/logger"
)

type DeactivateNoticeCommand struct {
	NoticeID    uint
	AuthorityID uint
}

type DeactivateNoticeUseCase struct {
	notices     notice.Repository
	authorities authority.Repository
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewDeactivateNoticeUseCase(
	notices notice.Repository,
	authorities authority.Repository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *DeactivateNoticeUseCase {
	return &DeactivateNoticeUseCase{
		notices:     notices,
		authorities: authorities,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *DeactivateNoticeUseCase) Execute(ctx context.Context, cmd DeactivateNoticeCommand) (*dto.NoticeDTO, error) {
	if cmd.AuthorityID == 0 {
		return nil, errors.ErrMissingIdentity
	}
	actor, err := uc.authorities.GetByID(ctx, cmd.AuthorityID)
	if err != nil {
		return nil, err
	}
	n, err := uc.notices.GetByID(ctx, cmd.NoticeID)
	if err != nil {
		return nil, err
	}

	wasActive := n.IsActive()
	if err := n.Deactivate(actor); err != nil {
		return nil, err
	}
	if !wasActive {
		return dto.ToNoticeDTO(n), nil
	}

	if err := uc.notices.Update(ctx, n); err != nil {
		uc.logger.Errorw("failed to deactivate notice", "notice_id", n.ID(), "error", err)
		return nil, err
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishAll(n.PullEvents()); err != nil {
			uc.logger.Warnw("failed to publish notice events", "notice_id", n.ID(), "error", err)
		}
	}

	uc.logger.Infow("notice deactivated", "notice_id", n.ID(), "authority_id", actor.ID())
	return dto.ToNoticeDTO(n), nil
}
