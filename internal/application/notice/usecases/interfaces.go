package usecases

import (
	"context"

	"campusvoice/internal/application/notice/dto"
)

type CreateNoticeExecutor interface {
	Execute(ctx context.Context, cmd CreateNoticeCommand) (*dto.NoticeDTO, error)
}

type DeactivateNoticeExecutor interface {
	Execute(ctx context.Context, cmd DeactivateNoticeCommand) (*dto.NoticeDTO, error)
}

type ListNoticesExecutor interface {
	Execute(ctx context.Context, query ListNoticesQuery) ([]*dto.NoticeDTO, error)
}

// MarkdownRenderer turns notice bodies into sanitized HTML.
type MarkdownRenderer interface {
	ToSafeHTML(markdown string) (string, error)
	PlainText(s string) string
}
