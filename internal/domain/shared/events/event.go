// Package events defines domain events and the in-process bus that delivers
// them after a transaction commits.
package events

import (
	"time"
)

// DomainEvent is implemented by every event published by an aggregate.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetOccurredAt() time.Time
}

// BaseEvent carries the fields common to all events.
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewBaseEvent(aggregateID, eventType string, at time.Time) BaseEvent {
	return BaseEvent{AggregateID: aggregateID, EventType: eventType, OccurredAt: at}
}

func (e BaseEvent) GetAggregateID() string   { return e.AggregateID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"

// EventHandler reacts to one kind of event.
type EventHandler interface {
	Handle(event DomainEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(event DomainEvent) error

func (f HandlerFunc) Handle(event DomainEvent) error { return f(event) }

// EventPublisher publishes events. Publishing never blocks the caller on
// handler execution.
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishAll(events []DomainEvent) error
}

// EventDispatcher is a publisher that handlers can subscribe to.
type EventDispatcher interface {
	EventPublisher
	Subscribe(eventType string, handler EventHandler) error
	Start() error
	Stop() error
}
