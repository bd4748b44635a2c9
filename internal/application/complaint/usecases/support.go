package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/complaint"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/logger"
)

// RetryPolicy bounds how often a mutation is replayed after losing an
// optimistic version race.
type RetryPolicy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     5,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
	}
}

// retryOnConflict replays op while it fails with ErrConcurrentModification.
// Any other error ends the loop at once.
func retryOnConflict[T any](ctx context.Context, p RetryPolicy, log logger.Interface, op func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	attempts := max(p.MaxAttempts, 1)

	attempt := 0
	return backoff.Retry(ctx, func() (T, error) {
		attempt++
		result, err := op()
		if err == nil {
			return result, nil
		}
		if stderrors.Is(err, complaint.ErrConcurrentModification) {
			log.Debugw("version conflict, retrying", "attempt", attempt, "error", err)
			return result, err
		}
		return result, backoff.Permanent(err)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(attempts))
}

func publishEvents(log logger.Interface, publisher events.EventPublisher, evts []events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.PublishAll(evts); err != nil {
		log.Warnw("failed to publish domain events", "count", len(evts), "error", err)
	}
}

// alertIfUnavailable raises the routing alert when err reports that nobody
// fills a slot. The slot is the detail the resolver attached to err.
func alertIfUnavailable(ctx context.Context, alerter RoutingAlerter, err error) {
	if alerter == nil || !errors.IsOperationalError(err) {
		return
	}
	slot := "unknown"
	if appErr := errors.GetAppError(err); appErr != nil && appErr.Details != "" {
		slot = appErr.Details
	}
	alerter.AlertNoAuthority(ctx, slot, err)
}

func loadActiveStudent(ctx context.Context, students campus.StudentRepository, rollNo string) (*campus.Student, error) {
	if rollNo == "" {
		return nil, errors.ErrMissingIdentity
	}
	s, err := students.GetByRollNo(ctx, rollNo)
	if err != nil {
		return nil, err
	}
	if !s.IsActive() {
		return nil, errors.ErrInactiveAccount
	}
	return s, nil
}

func loadAuthority(ctx context.Context, authorities authority.Repository, id uint) (*authority.Authority, error) {
	if id == 0 {
		return nil, errors.ErrMissingIdentity
	}
	return authorities.GetByID(ctx, id)
}

// viewAccess loads c for caller and enforces who may read it: a student
// needs the feed rules to admit them, closed complaints included; any
// active authority may read. The authority is returned for redaction.
type viewAccess struct {
	complaints  complaint.Repository
	students    campus.StudentRepository
	authorities authority.Repository
}

func (v viewAccess) load(ctx context.Context, complaintID string, caller Caller) (*complaint.Complaint, *authority.Authority, error) {
	if caller.StudentID == "" && caller.AuthorityID == 0 {
		return nil, nil, errors.ErrMissingIdentity
	}

	c, err := v.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, nil, err
	}

	if caller.AuthorityID != 0 {
		a, err := loadAuthority(ctx, v.authorities, caller.AuthorityID)
		if err != nil {
			return nil, nil, err
		}
		if !a.IsActive() {
			return nil, nil, errors.ErrInactiveAccount
		}
		return c, a, nil
	}

	s, err := loadActiveStudent(ctx, v.students, caller.StudentID)
	if err != nil {
		return nil, nil, err
	}
	if !c.IsVisibleTo(complaint.ViewerOf(s), true) {
		return nil, nil, complaint.ErrNotVisible
	}
	return c, nil, nil
}
