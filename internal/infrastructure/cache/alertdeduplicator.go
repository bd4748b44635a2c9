package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// alertKeyPrefix is the prefix for all alert deduplication keys
	alertKeyPrefix = "campusvoice:alert:"
	// DefaultAlertCooldown applies when no cooldown is configured
	DefaultAlertCooldown = 15 * time.Minute
)

// AlertType represents different alert types for deduplication
type AlertType string

const (
	AlertTypeNoAuthority AlertType = "no_authority"
)

// AlertDeduplicator provides Redis-based alert deduplication
type AlertDeduplicator struct {
	client *redis.Client
}

func NewAlertDeduplicator(client *redis.Client) *AlertDeduplicator {
	return &AlertDeduplicator{client: client}
}

// buildKey builds the Redis key for alert deduplication
// Format: campusvoice:alert:{type}:{slot}
func (d *AlertDeduplicator) buildKey(alertType AlertType, slot string) string {
	return fmt.Sprintf("%s%s:%s", alertKeyPrefix, alertType, slot)
}

// TryAcquire atomically starts a cooldown for slot. It returns false when
// the slot is already cooling down.
func (d *AlertDeduplicator) TryAcquire(ctx context.Context, alertType AlertType, slot string, ttl time.Duration) (bool, error) {
	key := d.buildKey(alertType, slot)

	acquired, err := d.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire alert lock: %w", err)
	}
	return acquired, nil
}

// Clear ends the cooldown of slot, e.g. once an authority is appointed.
func (d *AlertDeduplicator) Clear(ctx context.Context, alertType AlertType, slot string) error {
	key := d.buildKey(alertType, slot)

	if err := d.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear alert: %w", err)
	}
	return nil
}

// RemainingCooldown returns 0 when slot is not cooling down.
func (d *AlertDeduplicator) RemainingCooldown(ctx context.Context, alertType AlertType, slot string) (time.Duration, error) {
	key := d.buildKey(alertType, slot)

	ttl, err := d.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get cooldown: %w", err)
	}

	// TTL returns -2 if key doesn't exist, -1 if no TTL set
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
