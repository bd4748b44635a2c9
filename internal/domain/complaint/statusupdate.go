package complaint

import (
	"fmt"
	"time"

	vo "campusvoice/internal/domain/complaint/valueobjects"
)

// ActorSystem is recorded for transitions not performed by an authority.
const ActorSystem = "System"

// StatusUpdate is one append-only row of a complaint's status history.
type StatusUpdate struct {
	id          uint
	complaintID string
	oldStatus   vo.Status
	newStatus   vo.Status
	actorID     *uint
	reason      string
	createdAt   time.Time
}

func newStatusUpdate(complaintID string, from, to vo.Status, actorID *uint, reason string, at time.Time) *StatusUpdate {
	return &StatusUpdate{
		complaintID: complaintID,
		oldStatus:   from,
		newStatus:   to,
		actorID:     actorID,
		reason:      reason,
		createdAt:   at,
	}
}

func ReconstructStatusUpdate(
	id uint,
	complaintID string,
	oldStatus, newStatus vo.Status,
	actorID *uint,
	reason string,
	createdAt time.Time,
) (*StatusUpdate, error) {
	if id == 0 {
		return nil, fmt.Errorf("status update ID cannot be zero")
	}
	if !oldStatus.IsValid() || !newStatus.IsValid() {
		return nil, fmt.Errorf("invalid status in history row %d", id)
	}
	return &StatusUpdate{
		id:          id,
		complaintID: complaintID,
		oldStatus:   oldStatus,
		newStatus:   newStatus,
		actorID:     actorID,
		reason:      reason,
		createdAt:   createdAt,
	}, nil
}

func (s *StatusUpdate) ID() uint             { return s.id }
func (s *StatusUpdate) ComplaintID() string  { return s.complaintID }
func (s *StatusUpdate) OldStatus() vo.Status { return s.oldStatus }
func (s *StatusUpdate) NewStatus() vo.Status { return s.newStatus }
func (s *StatusUpdate) ActorID() *uint       { return s.actorID }
func (s *StatusUpdate) Reason() string       { return s.reason }
func (s *StatusUpdate) CreatedAt() time.Time { return s.createdAt }

// Actor renders the actor for audit output.
func (s *StatusUpdate) Actor() string {
	if s.actorID == nil {
		return ActorSystem
	}
	return fmt.Sprintf("authority:%d", *s.actorID)
}

func (s *StatusUpdate) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("status update ID is already set")
	}
	s.id = id
	return nil
}
