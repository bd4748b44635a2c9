package complaint

import (
	"context"

	vo "campusvoice/internal/domain/complaint/valueobjects"
)

// FeedQuery selects the complaints visible to a student, ordered by
// priority score then submission time, newest first.
type FeedQuery struct {
	Viewer        Viewer
	IncludeClosed bool
	Category      *vo.Category
	Status        *vo.Status
	Page          int
	PageSize      int
}

type Repository interface {
	Create(ctx context.Context, c *Complaint) error
	GetByID(ctx context.Context, id string) (*Complaint, error)
	// Update writes c only if the stored version still equals c.Version()
	// and fails with ErrConcurrentModification otherwise.
	Update(ctx context.Context, c *Complaint) error
	ListFeed(ctx context.Context, q FeedQuery) ([]*Complaint, int64, error)
	// ListAfter pages through every complaint in id order.
	ListAfter(ctx context.Context, afterID string, limit int) ([]*Complaint, error)
}

type StatusUpdateRepository interface {
	Append(ctx context.Context, u *StatusUpdate) error
	ListByComplaint(ctx context.Context, complaintID string) ([]*StatusUpdate, error)
}

type EscalationRepository interface {
	Create(ctx context.Context, r *EscalationRecord) error
	// Retire clears the current flag of r in storage.
	Retire(ctx context.Context, r *EscalationRecord) error
	GetCurrent(ctx context.Context, complaintID string) (*EscalationRecord, error)
	ListByComplaint(ctx context.Context, complaintID string) ([]*EscalationRecord, error)
}

type VoteRepository interface {
	// Find returns nil, nil when the student has not voted.
	Find(ctx context.Context, complaintID, studentID string) (*Vote, error)
	// Create fails with ErrDuplicateVote when a vote already exists.
	Create(ctx context.Context, v *Vote) error
	Update(ctx context.Context, v *Vote) error
	Delete(ctx context.Context, v *Vote) error
	Tally(ctx context.Context, complaintID string) (up, down int, err error)
}
