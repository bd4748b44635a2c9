package notice

import (
	"strconv"
	"time"

	"campusvoice/internal/domain/shared/events"
)

const (
	EventTypePublished   = "notice.published"
	EventTypeDeactivated = "notice.deactivated"
)

type PublishedEvent struct {
	events.BaseEvent
	AuthorityID uint
	Title       string
	Targets     Targets
}

type DeactivatedEvent struct {
	events.BaseEvent
	ActorID uint
}

func newPublishedEvent(n *Notice) PublishedEvent {
	return PublishedEvent{
		BaseEvent:   events.NewBaseEvent(strconv.FormatUint(uint64(n.id), 10), EventTypePublished, n.createdAt),
		AuthorityID: n.authorityID,
		Title:       n.title,
		Targets:     n.targets,
	}
}

func newDeactivatedEvent(n *Notice, actorID uint, at time.Time) DeactivatedEvent {
	return DeactivatedEvent{
		BaseEvent: events.NewBaseEvent(strconv.FormatUint(uint64(n.id), 10), EventTypeDeactivated, at),
		ActorID:   actorID,
	}
}
