package notice

import "campusvoice/internal/shared/errors"

var (
	ErrNoticeNotFound = errors.NewNotFoundError("notice not found").WithReason("notice_not_found")
	ErrScopeViolation = errors.NewForbiddenError("notice targets lie outside the authority's scope").WithReason("scope_violation")
	ErrNotOwner       = errors.NewForbiddenError("only the posting authority or an admin may change this notice").WithReason("not_owner")
)
