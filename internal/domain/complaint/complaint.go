// Package complaint holds the complaint aggregate: its status machine,
// escalation chain, vote-driven priority and visibility rules.
package complaint

import (
	"fmt"
	"strings"
	"time"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/biztime"
	"campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/id"
)

const maxTextLength = 5000

type Complaint struct {
	id                  string
	category            vo.Category
	originalText        string
	rephrasedText       *string
	visibility          vo.Visibility
	status              vo.Status
	baseTier            vo.PriorityTier
	priorityTier        vo.PriorityTier
	priorityScore       float64
	upvotes             int
	downvotes           int
	isMarkedAsSpam      bool
	assignedAuthorityID uint
	departmentID        *uint
	isCrossDepartment   bool
	submitterID         string
	submitter           campus.Profile
	submittedAt         time.Time
	updatedAt           time.Time
	resolvedAt          *time.Time
	acknowledgedAt      *time.Time
	version             int

	events []events.DomainEvent
}

// Submission is a classified complaint ready to be placed.
type Submission struct {
	Category      vo.Category
	OriginalText  string
	RephrasedText string
	Visibility    vo.Visibility
	BaseTier      vo.PriorityTier
	SubmitterID   string
	Submitter     campus.Profile
}

// Placement is the initially accountable authority chosen by routing.
type Placement struct {
	Authority         *authority.Authority
	DepartmentID      *uint
	IsCrossDepartment bool
}

// NewComplaint creates a Raised complaint assigned to the placed authority,
// together with its level-0 escalation record.
func NewComplaint(s Submission, p Placement, policy *PriorityPolicy) (*Complaint, *EscalationRecord, error) {
	if !s.Category.IsValid() {
		return nil, nil, errors.NewValidationError("invalid category", string(s.Category))
	}
	text := strings.TrimSpace(s.OriginalText)
	if text == "" {
		return nil, nil, errors.NewValidationError("complaint text is required")
	}
	if len(text) > maxTextLength {
		return nil, nil, errors.NewValidationError(fmt.Sprintf("complaint text exceeds maximum length of %d characters", maxTextLength))
	}
	if !s.Visibility.IsValid() {
		return nil, nil, errors.NewValidationError("invalid visibility", string(s.Visibility))
	}
	if s.BaseTier == "" {
		s.BaseTier = vo.TierLow
	}
	if !s.BaseTier.IsValid() {
		return nil, nil, errors.NewValidationError("invalid priority tier", string(s.BaseTier))
	}
	if strings.TrimSpace(s.SubmitterID) == "" {
		return nil, nil, errors.NewValidationError("submitter is required")
	}
	if p.Authority == nil || p.Authority.ID() == 0 {
		return nil, nil, fmt.Errorf("placement authority is required")
	}
	if !p.Authority.IsActive() {
		return nil, nil, fmt.Errorf("placement authority %d is inactive", p.Authority.ID())
	}

	now := biztime.NowUTC()
	c := &Complaint{
		id:                  id.New(),
		category:            s.Category,
		originalText:        text,
		visibility:          s.Visibility,
		status:              vo.StatusRaised,
		baseTier:            s.BaseTier,
		assignedAuthorityID: p.Authority.ID(),
		departmentID:        p.DepartmentID,
		isCrossDepartment:   p.IsCrossDepartment,
		submitterID:         s.SubmitterID,
		submitter:           s.Submitter,
		submittedAt:         now,
		updatedAt:           now,
		version:             1,
	}
	if rephrased := strings.TrimSpace(s.RephrasedText); rephrased != "" {
		c.rephrasedText = &rephrased
	}
	c.priorityScore = policy.Score(c.baseTier, 0)
	c.priorityTier = policy.TierFor(c.priorityScore)

	record := newEscalationRecord(c.id, 0, p.Authority, "initial assignment", nil, now)

	c.recordEvent(SubmittedEvent{
		BaseEvent:           base(c.id, EventTypeSubmitted, now),
		Category:            c.category,
		AssignedAuthorityID: c.assignedAuthorityID,
		IsCrossDepartment:   c.isCrossDepartment,
	})
	return c, record, nil
}

// ReconstructComplaint rebuilds a complaint from storage.
func ReconstructComplaint(
	complaintID string,
	category vo.Category,
	originalText string,
	rephrasedText *string,
	visibility vo.Visibility,
	status vo.Status,
	baseTier, priorityTier vo.PriorityTier,
	priorityScore float64,
	upvotes, downvotes int,
	isMarkedAsSpam bool,
	assignedAuthorityID uint,
	departmentID *uint,
	isCrossDepartment bool,
	submitterID string,
	submitter campus.Profile,
	submittedAt, updatedAt time.Time,
	resolvedAt, acknowledgedAt *time.Time,
	version int,
) (*Complaint, error) {
	if complaintID == "" {
		return nil, fmt.Errorf("complaint ID is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !visibility.IsValid() {
		return nil, fmt.Errorf("invalid visibility: %s", visibility)
	}
	if !baseTier.IsValid() || !priorityTier.IsValid() {
		return nil, fmt.Errorf("invalid priority tier")
	}

	return &Complaint{
		id:                  complaintID,
		category:            category,
		originalText:        originalText,
		rephrasedText:       rephrasedText,
		visibility:          visibility,
		status:              status,
		baseTier:            baseTier,
		priorityTier:        priorityTier,
		priorityScore:       priorityScore,
		upvotes:             upvotes,
		downvotes:           downvotes,
		isMarkedAsSpam:      isMarkedAsSpam,
		assignedAuthorityID: assignedAuthorityID,
		departmentID:        departmentID,
		isCrossDepartment:   isCrossDepartment,
		submitterID:         submitterID,
		submitter:           submitter,
		submittedAt:         submittedAt,
		updatedAt:           updatedAt,
		resolvedAt:          resolvedAt,
		acknowledgedAt:      acknowledgedAt,
		version:             version,
	}, nil
}

func (c *Complaint) ID() string                    { return c.id }
func (c *Complaint) Category() vo.Category         { return c.category }
func (c *Complaint) OriginalText() string          { return c.originalText }
func (c *Complaint) RephrasedText() *string        { return c.rephrasedText }
func (c *Complaint) Visibility() vo.Visibility     { return c.visibility }
func (c *Complaint) Status() vo.Status             { return c.status }
func (c *Complaint) BaseTier() vo.PriorityTier     { return c.baseTier }
func (c *Complaint) PriorityTier() vo.PriorityTier { return c.priorityTier }
func (c *Complaint) PriorityScore() float64        { return c.priorityScore }
func (c *Complaint) Upvotes() int                  { return c.upvotes }
func (c *Complaint) Downvotes() int                { return c.downvotes }
func (c *Complaint) IsMarkedAsSpam() bool          { return c.isMarkedAsSpam }
func (c *Complaint) AssignedAuthorityID() uint     { return c.assignedAuthorityID }
func (c *Complaint) DepartmentID() *uint           { return c.departmentID }
func (c *Complaint) IsCrossDepartment() bool       { return c.isCrossDepartment }
func (c *Complaint) SubmitterID() string           { return c.submitterID }
func (c *Complaint) Submitter() campus.Profile     { return c.submitter }
func (c *Complaint) SubmittedAt() time.Time        { return c.submittedAt }
func (c *Complaint) UpdatedAt() time.Time          { return c.updatedAt }
func (c *Complaint) ResolvedAt() *time.Time        { return c.resolvedAt }
func (c *Complaint) AcknowledgedAt() *time.Time    { return c.acknowledgedAt }
func (c *Complaint) Version() int                  { return c.version }

// NetVotes is upvotes minus downvotes.
func (c *Complaint) NetVotes() int {
	return c.upvotes - c.downvotes
}

// SetVersion is called by the repository after a successful optimistic write.
func (c *Complaint) SetVersion(v int) {
	c.version = v
}

// UpdateStatus moves the complaint to `to` on behalf of actor. Checks run in
// order: the transition must be legal, Closed and Spam need a reason, and
// the actor must be the active assignee or an active Admin.
func (c *Complaint) UpdateStatus(to vo.Status, actor *authority.Authority, reason string) (*StatusUpdate, error) {
	from := c.status
	if !to.IsValid() || !from.CanTransitionTo(to) {
		return nil, ErrInvalidTransition.WithDetails("%s -> %s", from, to)
	}
	reason = strings.TrimSpace(reason)
	if to.RequiresReason() && reason == "" {
		return nil, ErrReasonRequired.WithDetails("entering %s", to)
	}
	if !actor.Controls(c.assignedAuthorityID) {
		return nil, ErrNotAssignedAuthority
	}

	now := biztime.NowUTC()
	actorID := actor.ID()
	update := newStatusUpdate(c.id, from, to, &actorID, reason, now)

	c.status = to
	c.updatedAt = now
	switch {
	case to.IsResolved():
		c.resolvedAt = &now
	case to.IsRaised():
		c.resolvedAt = nil
	case to.IsSpam():
		c.isMarkedAsSpam = true
	}

	c.recordEvent(StatusChangedEvent{
		BaseEvent: base(c.id, EventTypeStatusChanged, now),
		From:      from,
		To:        to,
		ActorID:   &actorID,
		Reason:    reason,
	})
	if from.IsRaised() && c.acknowledgedAt == nil {
		c.acknowledgedAt = &now
		c.recordEvent(AcknowledgedEvent{
			BaseEvent:           base(c.id, EventTypeAcknowledged, now),
			AssignedAuthorityID: c.assignedAuthorityID,
		})
	}
	return update, nil
}

// applyVoteChange replaces the student's previous vote (nil for none) with
// next (nil for removal) and recomputes score and tier together.
func (c *Complaint) applyVoteChange(prev, next *vo.VoteType, policy *PriorityPolicy, now time.Time) error {
	up, down := c.upvotes, c.downvotes
	if prev != nil {
		switch *prev {
		case vo.VoteUp:
			up--
		case vo.VoteDown:
			down--
		}
	}
	if next != nil {
		switch *next {
		case vo.VoteUp:
			up++
		case vo.VoteDown:
			down++
		}
	}
	if up < 0 || down < 0 {
		return fmt.Errorf("vote counters of complaint %s would become negative", c.id)
	}

	oldTier := c.priorityTier
	c.upvotes, c.downvotes = up, down
	c.priorityScore = policy.Score(c.baseTier, c.NetVotes())
	c.priorityTier = policy.TierFor(c.priorityScore)
	c.updatedAt = now

	if c.priorityTier != oldTier {
		c.recordEvent(PriorityChangedEvent{
			BaseEvent: base(c.id, EventTypePriorityChanged, now),
			From:      oldTier,
			To:        c.priorityTier,
			Score:     c.priorityScore,
		})
	}
	return nil
}

func (c *Complaint) reassign(to uint, now time.Time) {
	c.assignedAuthorityID = to
	c.updatedAt = now
}

func (c *Complaint) recordEvent(e events.DomainEvent) {
	c.events = append(c.events, e)
}

// PullEvents returns and clears the events recorded since the last call.
func (c *Complaint) PullEvents() []events.DomainEvent {
	out := c.events
	c.events = nil
	return out
}
