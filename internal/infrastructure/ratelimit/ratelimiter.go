// Package ratelimit throttles how often a caller may perform an action
// using sliding windows stored in Redis.
package ratelimit

import (
	"context"
	"time"
)

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

// IsZero reports whether no window is limited.
func (c RateLimitConfig) IsZero() bool {
	return c.RequestsPerMinute <= 0 && c.RequestsPerHour <= 0 && c.RequestsPerDay <= 0
}

type RateLimiter interface {
	// Allow records one attempt for key when every configured window still
	// has room and reports whether the attempt is allowed.
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	GetUsed(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
