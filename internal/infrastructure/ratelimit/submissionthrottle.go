package ratelimit

import (
	"context"

	"campusvoice/internal/shared/config"
)

const submissionKeyPrefix = "submit:"

// SubmissionThrottle caps complaint submissions per student.
type SubmissionThrottle struct {
	limiter RateLimiter
	limits  RateLimitConfig
}

func NewSubmissionThrottle(limiter RateLimiter, cfg config.ThrottleConfig) *SubmissionThrottle {
	return &SubmissionThrottle{
		limiter: limiter,
		limits: RateLimitConfig{
			RequestsPerHour: cfg.SubmissionsPerHour,
			RequestsPerDay:  cfg.SubmissionsPerDay,
		},
	}
}

// Allow records a submission attempt by studentID. Zero limits disable the
// throttle.
func (t *SubmissionThrottle) Allow(ctx context.Context, studentID string) (bool, error) {
	if t.limits.IsZero() {
		return true, nil
	}
	return t.limiter.Allow(ctx, submissionKeyPrefix+studentID, t.limits)
}
