package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/shared/logger"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestAlertDeduplicator(t *testing.T) {
	mr, client := setupMiniredis(t)
	dedup := NewAlertDeduplicator(client)
	ctx := context.Background()

	ok, err := dedup.TryAcquire(ctx, AlertTypeNoAuthority, "HOD:10", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("campusvoice:alert:no_authority:HOD:10"))

	ok, err = dedup.TryAcquire(ctx, AlertTypeNoAuthority, "HOD:10", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = dedup.TryAcquire(ctx, AlertTypeNoAuthority, "HOD:20", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	remaining, err := dedup.RemainingCooldown(ctx, AlertTypeNoAuthority, "HOD:10")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, remaining)

	mr.FastForward(time.Minute + time.Second)
	ok, err = dedup.TryAcquire(ctx, AlertTypeNoAuthority, "HOD:10", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, dedup.Clear(ctx, AlertTypeNoAuthority, "HOD:10"))
	remaining, err = dedup.RemainingCooldown(ctx, AlertTypeNoAuthority, "HOD:10")
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestRoutingAlerter(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("no Admin-Officer")

	t.Run("suppresses repeats within the cooldown", func(t *testing.T) {
		mr, client := setupMiniredis(t)
		alerter := NewRoutingAlerter(NewAlertDeduplicator(client), time.Minute, logger.NewDiscard())

		assert.True(t, alerter.AlertNoAuthority(ctx, "Admin-Officer", cause))
		assert.False(t, alerter.AlertNoAuthority(ctx, "Admin-Officer", cause))

		mr.FastForward(2 * time.Minute)
		assert.True(t, alerter.AlertNoAuthority(ctx, "Admin-Officer", cause))
	})

	t.Run("alerts without redis", func(t *testing.T) {
		alerter := NewRoutingAlerter(nil, 0, logger.NewDiscard())
		assert.True(t, alerter.AlertNoAuthority(ctx, "Admin-Officer", cause))
		assert.True(t, alerter.AlertNoAuthority(ctx, "Admin-Officer", cause))
	})

	t.Run("notifies once per cooldown", func(t *testing.T) {
		_, client := setupMiniredis(t)
		notifier := &recordingNotifier{}
		alerter := NewRoutingAlerter(NewAlertDeduplicator(client), time.Minute, logger.NewDiscard()).
			WithNotifier(notifier)

		alerter.AlertNoAuthority(ctx, "Warden:Male", cause)
		alerter.AlertNoAuthority(ctx, "Warden:Male", cause)

		assert.Equal(t, []string{"Warden:Male"}, notifier.slots)
	})

	t.Run("notifier failure does not suppress the alert", func(t *testing.T) {
		notifier := &recordingNotifier{err: errors.New("smtp down")}
		alerter := NewRoutingAlerter(nil, 0, logger.NewDiscard()).WithNotifier(notifier)

		assert.True(t, alerter.AlertNoAuthority(ctx, "Admin-Officer", cause))
		assert.Len(t, notifier.slots, 1)
	})

	t.Run("alerts when redis is down", func(t *testing.T) {
		mr, client := setupMiniredis(t)
		alerter := NewRoutingAlerter(NewAlertDeduplicator(client), time.Minute, logger.NewDiscard())
		mr.Close()

		assert.True(t, alerter.AlertNoAuthority(ctx, "Admin-Officer", cause))
	})
}

type recordingNotifier struct {
	slots []string
	err   error
}

func (n *recordingNotifier) NotifyNoAuthority(_ context.Context, slot string, _ error) error {
	n.slots = append(n.slots, slot)
	return n.err
}
