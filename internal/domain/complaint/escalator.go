package complaint

import (
	"context"
	"fmt"
	"strings"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/shared/biztime"
)

// Escalator moves accountability for a complaint one step up its
// authority's fixed chain.
type Escalator struct {
	directory authority.Repository
}

func NewEscalator(directory authority.Repository) *Escalator {
	return &Escalator{directory: directory}
}

// Escalate retires current and returns the new current record. Checks run
// in order: requester must control the complaint, a reason is required,
// the complaint must not be closed and its authority must have a successor
// type. A successor type with no active holder is ErrNoAuthorityAvailable.
func (e *Escalator) Escalate(
	ctx context.Context,
	c *Complaint,
	current *EscalationRecord,
	requester *authority.Authority,
	reason string,
) (*EscalationRecord, error) {
	if !requester.Controls(c.assignedAuthorityID) {
		return nil, ErrNotCurrentAuthority
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired.WithDetails("escalation")
	}
	if c.status.IsClosed() {
		return nil, ErrComplaintClosed
	}
	if current == nil || !current.IsCurrent() || current.AuthorityID() != c.assignedAuthorityID {
		return nil, fmt.Errorf("escalation chain of complaint %s does not match its assignee %d", c.id, c.assignedAuthorityID)
	}

	assigned := requester
	if requester.ID() != c.assignedAuthorityID {
		var err error
		if assigned, err = e.directory.GetByID(ctx, c.assignedAuthorityID); err != nil {
			return nil, err
		}
	}

	nextType, ok := assigned.Type().Successor()
	if !ok {
		return nil, ErrNoHigherLevel.WithDetails("%s is the top of its chain", assigned.Type())
	}
	next, err := e.directory.FindActive(ctx, nextType, nil)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, authority.ErrNoAuthorityAvailable.WithDetails("escalation to %s", nextType)
	}

	now := biztime.NowUTC()
	requesterID := requester.ID()
	from := c.assignedAuthorityID

	current.retire()
	record := newEscalationRecord(c.id, current.Level()+1, next, reason, &requesterID, now)
	c.reassign(next.ID(), now)

	c.recordEvent(EscalatedEvent{
		BaseEvent:       base(c.id, EventTypeEscalated, now),
		FromAuthorityID: from,
		ToAuthorityID:   next.ID(),
		Level:           record.Level(),
		Reason:          reason,
	})
	return record, nil
}
