// Package pubsub relays committed domain events to Redis so that processes
// outside this one (notifiers, dashboards) can follow complaint activity.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/goroutine"
	"campusvoice/internal/shared/logger"
)

// EventChannel is the Redis channel every domain event is published on.
const EventChannel = "campusvoice:events"

const publishTimeout = 2 * time.Second

// Envelope is the wire form of a relayed event.
type Envelope struct {
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  int64           `json:"occurred_at"`
	InstanceID  string          `json:"instance_id"`
	Payload     json.RawMessage `json:"payload"`
}

// RedisEventRelay publishes domain events to Redis Pub/Sub and lets other
// processes subscribe to them.
type RedisEventRelay struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string
}

func NewRedisEventRelay(client *redis.Client, logger logger.Interface) *RedisEventRelay {
	return &RedisEventRelay{
		client:     client,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

// Handle implements events.EventHandler.
func (r *RedisEventRelay) Handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return r.Publish(ctx, event)
}

func (r *RedisEventRelay) Publish(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.GetEventType(), err)
	}
	data, err := json.Marshal(Envelope{
		Type:        event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		OccurredAt:  event.GetOccurredAt().UnixMilli(),
		InstanceID:  r.instanceID,
		Payload:     payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := r.client.Publish(ctx, EventChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.GetEventType(), err)
	}

	r.logger.Debugw("domain event relayed to Redis",
		"event_type", event.GetEventType(),
		"aggregate_id", event.GetAggregateID(),
	)
	return nil
}

// Subscribe delivers relayed events to handler until ctx is cancelled,
// reconnecting with exponential backoff.
func (r *RedisEventRelay) Subscribe(ctx context.Context, handler func(Envelope)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := r.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.logger.Warnw("event subscription disconnected, reconnecting",
			"channel", EventChannel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (r *RedisEventRelay) subscribe(ctx context.Context, handler func(Envelope)) error {
	sub := r.client.Subscribe(ctx, EventChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", EventChannel, err)
	}
	r.logger.Infow("subscribed to event channel", "channel", EventChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				r.logger.Warnw("event channel closed", "channel", EventChannel)
				return nil
			}

			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.logger.Warnw("failed to unmarshal event envelope",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			goroutine.SafeGo(r.logger, "event-subscriber", func() {
				handler(env)
			})
		}
	}
}
