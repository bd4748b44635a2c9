package complaint

import (
	"time"

	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/domain/shared/events"
)

const (
	EventTypeSubmitted     = "complaint.submitted"
	EventTypeStatusChanged = "complaint.status_changed"
	// EventTypeAcknowledged fires once, when the complaint first leaves
	// Raised. Escalation timers start counting from it.
	EventTypeAcknowledged    = "complaint.acknowledged"
	EventTypeEscalated       = "complaint.escalated"
	EventTypePriorityChanged = "complaint.priority_changed"
)

type SubmittedEvent struct {
	events.BaseEvent
	Category            vo.Category `json:"category"`
	AssignedAuthorityID uint        `json:"assigned_authority_id"`
	IsCrossDepartment   bool        `json:"is_cross_department"`
}

type StatusChangedEvent struct {
	events.BaseEvent
	From    vo.Status `json:"from"`
	To      vo.Status `json:"to"`
	ActorID *uint     `json:"actor_id,omitempty"`
	Reason  string    `json:"reason,omitempty"`
}

type AcknowledgedEvent struct {
	events.BaseEvent
	AssignedAuthorityID uint `json:"assigned_authority_id"`
}

type EscalatedEvent struct {
	events.BaseEvent
	FromAuthorityID uint   `json:"from_authority_id"`
	ToAuthorityID   uint   `json:"to_authority_id"`
	Level           int    `json:"level"`
	Reason          string `json:"reason"`
}

type PriorityChangedEvent struct {
	events.BaseEvent
	From  vo.PriorityTier `json:"from"`
	To    vo.PriorityTier `json:"to"`
	Score float64         `json:"score"`
}

func base(id, eventType string, at time.Time) events.BaseEvent {
	return events.NewBaseEvent(id, eventType, at)
}
