package dto

import (
	"time"

	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/complaint"
)

type ComplaintDTO struct {
	ID                  string        `json:"id"`
	Category            string        `json:"category"`
	OriginalText        string        `json:"original_text"`
	RephrasedText       *string       `json:"rephrased_text"`
	Visibility          string        `json:"visibility"`
	Status              string        `json:"status"`
	PriorityTier        string        `json:"priority_tier"`
	PriorityScore       float64       `json:"priority_score"`
	Upvotes             int           `json:"upvotes"`
	Downvotes           int           `json:"downvotes"`
	IsMarkedAsSpam      bool          `json:"is_marked_as_spam"`
	AssignedAuthorityID uint          `json:"assigned_authority_id"`
	DepartmentID        *uint         `json:"department_id"`
	IsCrossDepartment   bool          `json:"is_cross_department"`
	SubmittedAt         time.Time     `json:"submitted_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	ResolvedAt          *time.Time    `json:"resolved_at"`
	AcknowledgedAt      *time.Time    `json:"acknowledged_at"`
	Submitter           *SubmitterDTO `json:"submitter,omitempty"`
}

// SubmitterDTO is only filled for authority viewers, after redaction.
type SubmitterDTO struct {
	RollNo   string `json:"roll_no"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Redacted bool   `json:"redacted"`
}

type StatusUpdateDTO struct {
	ID        uint      `json:"id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	UpdatedBy string    `json:"updated_by"`
	ActorID   *uint     `json:"actor_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type EscalationRecordDTO struct {
	ID            uint      `json:"id"`
	Level         int       `json:"level"`
	AuthorityID   uint      `json:"authority_id"`
	AuthorityType string    `json:"authority_type"`
	AuthorityName string    `json:"authority_name"`
	Reason        string    `json:"reason"`
	EscalatedBy   *uint     `json:"escalated_by"`
	IsCurrent     bool      `json:"is_current"`
	CreatedAt     time.Time `json:"created_at"`
}

type VoteResultDTO struct {
	ComplaintID   string  `json:"complaint_id"`
	VoteType      string  `json:"vote_type,omitempty"`
	Upvotes       int     `json:"upvotes"`
	Downvotes     int     `json:"downvotes"`
	PriorityScore float64 `json:"priority_score"`
	PriorityTier  string  `json:"priority_tier"`
}

func ToComplaintDTO(c *complaint.Complaint) *ComplaintDTO {
	if c == nil {
		return nil
	}
	return &ComplaintDTO{
		ID:                  c.ID(),
		Category:            c.Category().String(),
		OriginalText:        c.OriginalText(),
		RephrasedText:       c.RephrasedText(),
		Visibility:          c.Visibility().String(),
		Status:              c.Status().String(),
		PriorityTier:        c.PriorityTier().String(),
		PriorityScore:       c.PriorityScore(),
		Upvotes:             c.Upvotes(),
		Downvotes:           c.Downvotes(),
		IsMarkedAsSpam:      c.IsMarkedAsSpam(),
		AssignedAuthorityID: c.AssignedAuthorityID(),
		DepartmentID:        c.DepartmentID(),
		IsCrossDepartment:   c.IsCrossDepartment(),
		SubmittedAt:         c.SubmittedAt(),
		UpdatedAt:           c.UpdatedAt(),
		ResolvedAt:          c.ResolvedAt(),
		AcknowledgedAt:      c.AcknowledgedAt(),
	}
}

func ToSubmitterDTO(identity campus.Identity) *SubmitterDTO {
	return &SubmitterDTO{
		RollNo:   identity.RollNo,
		Name:     identity.Name,
		Email:    identity.Email,
		Redacted: identity.Redacted,
	}
}

func ToStatusUpdateDTO(u *complaint.StatusUpdate) StatusUpdateDTO {
	return StatusUpdateDTO{
		ID:        u.ID(),
		OldStatus: u.OldStatus().String(),
		NewStatus: u.NewStatus().String(),
		UpdatedBy: u.Actor(),
		ActorID:   u.ActorID(),
		Reason:    u.Reason(),
		CreatedAt: u.CreatedAt(),
	}
}

func ToEscalationRecordDTO(r *complaint.EscalationRecord) EscalationRecordDTO {
	return EscalationRecordDTO{
		ID:            r.ID(),
		Level:         r.Level(),
		AuthorityID:   r.AuthorityID(),
		AuthorityType: r.AuthorityType().String(),
		AuthorityName: r.AuthorityName(),
		Reason:        r.Reason(),
		EscalatedBy:   r.EscalatedBy(),
		IsCurrent:     r.IsCurrent(),
		CreatedAt:     r.CreatedAt(),
	}
}

func ToVoteResultDTO(c *complaint.Complaint, vote *complaint.Vote) *VoteResultDTO {
	result := &VoteResultDTO{
		ComplaintID:   c.ID(),
		Upvotes:       c.Upvotes(),
		Downvotes:     c.Downvotes(),
		PriorityScore: c.PriorityScore(),
		PriorityTier:  c.PriorityTier().String(),
	}
	if vote != nil {
		result.VoteType = vote.VoteType().String()
	}
	return result
}
