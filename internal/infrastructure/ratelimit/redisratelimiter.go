package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "campusvoice:ratelimit:"

type window struct {
	duration time.Duration
	limit    int
}

type RedisRateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	now := l.now()

	windows := []window{
		{time.Minute, config.RequestsPerMinute},
		{time.Hour, config.RequestsPerHour},
		{24 * time.Hour, config.RequestsPerDay},
	}

	var active []window
	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		used, err := l.countWindow(ctx, key, w.duration, now)
		if err != nil {
			return false, err
		}
		if used >= int64(w.limit) {
			return false, nil
		}
		active = append(active, w)
	}

	// Only allowed attempts are recorded, so a throttled caller recovers
	// as soon as the oldest attempt leaves the window.
	pipe := l.client.TxPipeline()
	member := fmt.Sprintf("%d:%s", now.UnixNano(), uuid.NewString())
	for _, w := range active {
		redisKey := l.getKey(key, w.duration)
		pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
		pipe.Expire(ctx, redisKey, w.duration+time.Minute)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to record attempt: %w", err)
	}
	return true, nil
}

func (l *RedisRateLimiter) countWindow(ctx context.Context, key string, d time.Duration, now time.Time) (int64, error) {
	redisKey := l.getKey(key, d)
	windowStart := now.Add(-d).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}
	return zcard.Val(), nil
}

// GetUsed returns the number of attempts recorded for key in window.
func (l *RedisRateLimiter) GetUsed(ctx context.Context, key string, d time.Duration) (int64, error) {
	return l.countWindow(ctx, key, d, l.now())
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	pattern := fmt.Sprintf("%s%s:*", keyPrefix, key)

	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(identifier string, d time.Duration) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, identifier, d.String())
}
