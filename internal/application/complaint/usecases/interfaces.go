package usecases

import (
	"context"

	"campusvoice/internal/application/complaint/dto"
	"campusvoice/internal/domain/complaint"
	"campusvoice/internal/domain/routing"
)

// Placer chooses the initially accountable authority for a submission.
type Placer interface {
	Resolve(ctx context.Context, req routing.Request) (complaint.Placement, error)
}

// RoutingAlerter raises the operational alert for a slot nobody fills.
type RoutingAlerter interface {
	AlertNoAuthority(ctx context.Context, slot string, cause error) bool
}

// SubmissionThrottle limits how often one student may submit.
type SubmissionThrottle interface {
	Allow(ctx context.Context, studentID string) (bool, error)
}

// Caller identifies who is asking. Exactly one field is set.
type Caller struct {
	StudentID   string
	AuthorityID uint
}

type SubmitComplaintExecutor interface {
	Execute(ctx context.Context, cmd SubmitComplaintCommand) (*dto.ComplaintDTO, error)
}

type TransitionStatusExecutor interface {
	Execute(ctx context.Context, cmd TransitionStatusCommand) (*dto.ComplaintDTO, error)
}

type EscalateComplaintExecutor interface {
	Execute(ctx context.Context, cmd EscalateComplaintCommand) (*EscalateComplaintResult, error)
}

type CastVoteExecutor interface {
	Execute(ctx context.Context, cmd CastVoteCommand) (*dto.VoteResultDTO, error)
}

type RemoveVoteExecutor interface {
	Execute(ctx context.Context, cmd RemoveVoteCommand) (*dto.VoteResultDTO, error)
}

type GetComplaintExecutor interface {
	Execute(ctx context.Context, query GetComplaintQuery) (*dto.ComplaintDTO, error)
}

type ListFeedExecutor interface {
	Execute(ctx context.Context, query ListFeedQuery) (*ListFeedResult, error)
}

type StatusHistoryExecutor interface {
	Execute(ctx context.Context, query HistoryQuery) ([]dto.StatusUpdateDTO, error)
}

type EscalationHistoryExecutor interface {
	Execute(ctx context.Context, query HistoryQuery) ([]dto.EscalationRecordDTO, error)
}

type IsVisibleExecutor interface {
	Execute(ctx context.Context, query IsVisibleQuery) (bool, error)
}
