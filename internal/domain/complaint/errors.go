package complaint

import (
	"campusvoice/internal/shared/errors"
)

// Failures of complaint operations. Match with errors.Is; returned errors may
// carry additional details.
var (
	ErrComplaintNotFound      = errors.NewNotFoundError("complaint not found").WithReason("complaint_not_found")
	ErrInvalidTransition      = errors.NewValidationError("status transition is not allowed").WithReason("invalid_transition")
	ErrReasonRequired         = errors.NewValidationError("a reason is required").WithReason("reason_required")
	ErrNotAssignedAuthority   = errors.NewForbiddenError("only the assigned authority or an admin may change this complaint").WithReason("not_assigned_authority")
	ErrNotCurrentAuthority    = errors.NewForbiddenError("only the current authority or an admin may escalate this complaint").WithReason("not_current_authority")
	ErrNoHigherLevel          = errors.NewValidationError("the current authority has no higher level").WithReason("no_higher_level")
	ErrComplaintClosed        = errors.NewValidationError("complaint is closed").WithReason("complaint_closed")
	ErrSelfVoteForbidden      = errors.NewValidationError("students cannot vote on their own complaint").WithReason("self_vote_forbidden")
	ErrDuplicateVote          = errors.NewValidationError("vote already recorded").WithReason("duplicate_vote")
	ErrVoteNotFound           = errors.NewNotFoundError("vote not found").WithReason("vote_not_found")
	ErrNotVisible             = errors.NewForbiddenError("complaint is not visible to this student").WithReason("not_visible")
	ErrSpamSubmission         = errors.NewValidationError("complaint was classified as spam").WithReason("spam_submission")
	ErrConcurrentModification = errors.NewConflictError("complaint was modified concurrently").WithReason("concurrent_modification")
)
