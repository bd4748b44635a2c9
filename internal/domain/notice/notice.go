// Package notice models broadcast notices posted by authorities and the
// scope rules that bound their audience.
package notice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	vo "campusvoice/internal/domain/notice/valueobjects"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/biztime"
	"campusvoice/internal/shared/errors"
)

const (
	maxTitleLength   = 200
	maxContentLength = 10000
)

type Notice struct {
	id          uint
	authorityID uint
	title       string
	content     string
	contentHTML string
	category    vo.Category
	priority    vo.Priority
	targets     Targets
	isActive    bool
	expiresAt   *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	events      []events.DomainEvent
}

// Draft is what an authority asks to broadcast. Targets is checked against
// the author's scope and may be widened to the scope's fixed values.
type Draft struct {
	Title       string
	Content     string
	ContentHTML string
	Category    vo.Category
	Priority    vo.Priority
	Targets     Targets
	ExpiresAt   *time.Time
}

// NewNotice validates d and resolves its targets against author's scope.
func NewNotice(author *authority.Authority, d Draft) (*Notice, error) {
	if author == nil || author.ID() == 0 {
		return nil, fmt.Errorf("posting authority is required")
	}
	if !author.IsActive() {
		return nil, errors.NewForbiddenError("inactive authorities cannot post notices")
	}

	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, errors.NewValidationError("title is required")
	}
	if len(title) > maxTitleLength {
		return nil, errors.NewValidationError(fmt.Sprintf("title exceeds maximum length of %d characters", maxTitleLength))
	}
	if strings.TrimSpace(d.Content) == "" {
		return nil, errors.NewValidationError("content is required")
	}
	if len(d.Content) > maxContentLength {
		return nil, errors.NewValidationError(fmt.Sprintf("content exceeds maximum length of %d characters", maxContentLength))
	}

	category := d.Category
	if category == "" {
		category = vo.CategoryGeneral
	}
	if !category.IsValid() {
		return nil, errors.NewValidationError("invalid notice category", string(category))
	}
	priority := d.Priority
	if priority == "" {
		priority = vo.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, errors.NewValidationError("invalid notice priority", string(priority))
	}

	now := biztime.NowUTC()
	if d.ExpiresAt != nil && !d.ExpiresAt.After(now) {
		return nil, errors.NewValidationError("expiry must be in the future")
	}

	if err := validateTargets(d.Targets); err != nil {
		return nil, err
	}
	targets, err := ResolveTargets(author.Scope(), d.Targets)
	if err != nil {
		return nil, err
	}

	return &Notice{
		authorityID: author.ID(),
		title:       title,
		content:     d.Content,
		contentHTML: d.ContentHTML,
		category:    category,
		priority:    priority,
		targets:     targets,
		isActive:    true,
		expiresAt:   d.ExpiresAt,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructNotice(
	id uint,
	authorityID uint,
	title, content, contentHTML string,
	category vo.Category,
	priority vo.Priority,
	targets Targets,
	isActive bool,
	expiresAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Notice, error) {
	if id == 0 {
		return nil, fmt.Errorf("notice ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid notice category: %s", category)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid notice priority: %s", priority)
	}
	return &Notice{
		id:          id,
		authorityID: authorityID,
		title:       title,
		content:     content,
		contentHTML: contentHTML,
		category:    category,
		priority:    priority,
		targets:     targets,
		isActive:    isActive,
		expiresAt:   expiresAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (n *Notice) ID() uint              { return n.id }
func (n *Notice) AuthorityID() uint     { return n.authorityID }
func (n *Notice) Title() string         { return n.title }
func (n *Notice) Content() string       { return n.content }
func (n *Notice) ContentHTML() string   { return n.contentHTML }
func (n *Notice) Category() vo.Category { return n.category }
func (n *Notice) Priority() vo.Priority { return n.priority }
func (n *Notice) Targets() Targets      { return n.targets }
func (n *Notice) IsActive() bool        { return n.isActive }
func (n *Notice) ExpiresAt() *time.Time { return n.expiresAt }
func (n *Notice) CreatedAt() time.Time  { return n.createdAt }
func (n *Notice) UpdatedAt() time.Time  { return n.updatedAt }

// SetID assigns the storage id and announces the publication.
func (n *Notice) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notice ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notice ID cannot be zero")
	}
	n.id = id
	n.events = append(n.events, newPublishedEvent(n))
	return nil
}

// IsExpired reports whether the notice has passed its expiry at now.
func (n *Notice) IsExpired(now time.Time) bool {
	return n.expiresAt != nil && !now.Before(*n.expiresAt)
}

// VisibleTo reports whether a student with profile p sees the notice at now.
func (n *Notice) VisibleTo(p campus.Profile, now time.Time) bool {
	return n.isActive && !n.IsExpired(now) && n.targets.Admits(p)
}

// Deactivate withdraws the notice. Only the posting authority or an active
// Admin may do so; deactivating twice is a no-op.
func (n *Notice) Deactivate(actor *authority.Authority) error {
	if !actor.Controls(n.authorityID) {
		return ErrNotOwner
	}
	if !n.isActive {
		return nil
	}
	now := biztime.NowUTC()
	n.isActive = false
	n.updatedAt = now
	n.events = append(n.events, newDeactivatedEvent(n, actor.ID(), now))
	return nil
}

func (n *Notice) PullEvents() []events.DomainEvent {
	out := n.events
	n.events = nil
	return out
}

type Repository interface {
	Create(ctx context.Context, n *Notice) error
	GetByID(ctx context.Context, id uint) (*Notice, error)
	Update(ctx context.Context, n *Notice) error
	// ListActive returns active notices not expired at now, highest
	// priority first, then newest.
	ListActive(ctx context.Context, now time.Time) ([]*Notice, error)
}
