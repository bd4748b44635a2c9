package errors

// Caller identity errors. The auth gateway vouches for who is calling; these
// report headers that do not resolve to a usable directory entry.
var (
	ErrMissingIdentity = NewUnauthorizedError("caller identity is required").WithReason("missing_identity")
	ErrUnknownCaller   = NewUnauthorizedError("caller is not in the directory").WithReason("unknown_caller")
	ErrInactiveAccount = NewForbiddenError("account is inactive").WithReason("account_inactive")
)
