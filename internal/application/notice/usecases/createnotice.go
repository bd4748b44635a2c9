package usecases

import (
	"context"
	"time"

	"campusvoice/internal/application/notice/dto"
	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/notice"
	vo "campusvoice/internal/domain/notice/valueobjects"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/logger"
)

type CreateNoticeCommand struct {
	AuthorityID uint
	Title       string
	Content     string
	Category    vo.Category
	Priority    vo.Priority
	Targets     notice.Targets
	ExpiresAt   *time.Time
}

type CreateNoticeUseCase struct {
	notices     notice.Repository
	authorities authority.Repository
	renderer    MarkdownRenderer
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewCreateNoticeUseCase(
	notices notice.Repository,
	authorities authority.Repository,
	renderer MarkdownRenderer,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateNoticeUseCase {
	return &CreateNoticeUseCase{
		notices:     notices,
		authorities: authorities,
		renderer:    renderer,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *CreateNoticeUseCase) Execute(ctx context.Context, cmd CreateNoticeCommand) (*dto.NoticeDTO, error) {
	if cmd.AuthorityID == 0 {
		return nil, errors.ErrMissingIdentity
	}
	author, err := uc.authorities.GetByID(ctx, cmd.AuthorityID)
	if err != nil {
		return nil, err
	}

	html, err := uc.renderer.ToSafeHTML(cmd.Content)
	if err != nil {
		return nil, errors.NewValidationError("notice content could not be rendered", err.Error())
	}

	n, err := notice.NewNotice(author, notice.Draft{
		Title:       uc.renderer.PlainText(cmd.Title),
		Content:     cmd.Content,
		ContentHTML: html,
		Category:    cmd.Category,
		Priority:    cmd.Priority,
		Targets:     cmd.Targets,
		ExpiresAt:   cmd.ExpiresAt,
	})
	if err != nil {
		uc.logger.Warnw("notice rejected", "authority_id", cmd.AuthorityID, "error", err)
		return nil, err
	}

	if err := uc.notices.Create(ctx, n); err != nil {
		uc.logger.Errorw("failed to store notice", "authority_id", cmd.AuthorityID, "error", err)
		return nil, err
	}

	if evts := n.PullEvents(); len(evts) > 0 && uc.publisher != nil {
		if err := uc.publisher.PublishAll(evts); err != nil {
			uc.logger.Warnw("failed to publish notice events", "notice_id", n.ID(), "error", err)
		}
	}

	uc.logger.Infow("notice published",
		"notice_id", n.ID(),
		"authority_id", author.ID(),
		"priority", n.Priority(),
	)
	return dto.ToNoticeDTO(n), nil
}
