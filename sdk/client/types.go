// Package client provides a Go SDK for the CampusVoice HTTP API, intended
// for the gateway that authenticates users and forwards their identity.
package client

import "time"

// Complaint is a complaint as returned by the API.
type Complaint struct {
	ID                  string     `json:"id"`
	Category            string     `json:"category"`
	OriginalText        string     `json:"original_text"`
	RephrasedText       *string    `json:"rephrased_text"`
	Visibility          string     `json:"visibility"`
	Status              string     `json:"status"`
	PriorityTier        string     `json:"priority_tier"`
	PriorityScore       float64    `json:"priority_score"`
	Upvotes             int        `json:"upvotes"`
	Downvotes           int        `json:"downvotes"`
	IsMarkedAsSpam      bool       `json:"is_marked_as_spam"`
	AssignedAuthorityID uint       `json:"assigned_authority_id"`
	DepartmentID        *uint      `json:"department_id"`
	IsCrossDepartment   bool       `json:"is_cross_department"`
	SubmittedAt         time.Time  `json:"submitted_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ResolvedAt          *time.Time `json:"resolved_at"`
	AcknowledgedAt      *time.Time `json:"acknowledged_at"`
	Submitter           *Submitter `json:"submitter,omitempty"`
}

// Submitter is only present when an authority reads a complaint.
type Submitter struct {
	RollNo   string `json:"roll_no"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Redacted bool   `json:"redacted"`
}

// Submission is the input of Submit. Category and Text are required; the
// other fields carry the upstream classifier's verdict.
type Submission struct {
	Text           string `json:"text"`
	Category       string `json:"category"`
	RephrasedText  string `json:"rephrased_text,omitempty"`
	IsSpam         bool   `json:"is_spam,omitempty"`
	Visibility     string `json:"visibility,omitempty"`
	Priority       string `json:"priority,omitempty"`
	DepartmentCode string `json:"department_code,omitempty"`
}

// FeedOptions filters a student's feed. Zero values use server defaults.
type FeedOptions struct {
	Page          int
	PageSize      int
	IncludeClosed bool
	Category      string
	Status        string
}

// Feed is one page of a student's feed.
type Feed struct {
	Items      []Complaint `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

type StatusUpdate struct {
	ID        uint      `json:"id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	UpdatedBy string    `json:"updated_by"`
	ActorID   *uint     `json:"actor_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type EscalationRecord struct {
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

// Escalation is the result of Escalate.
type Escalation struct {
	Complaint *Complaint       `json:"complaint"`
	Record    EscalationRecord `json:"escalation"`
}

// VoteResult reports the tallies after a vote change.
type VoteResult struct {
	ComplaintID   string  `json:"complaint_id"`
	VoteType      string  `json:"vote_type,omitempty"`
	Upvotes       int     `json:"upvotes"`
	Downvotes     int     `json:"downvotes"`
	PriorityScore float64 `json:"priority_score"`
	PriorityTier  string  `json:"priority_tier"`
}

type Notice struct {
	ID          uint          `json:"id"`
	AuthorityID uint          `json:"authority_id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	ContentHTML string        `json:"content_html"`
	Category    string        `json:"category"`
	Priority    string        `json:"priority"`
	Targets     NoticeTargets `json:"targets"`
	IsActive    bool          `json:"is_active"`
	ExpiresAt   *time.Time    `json:"expires_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NoticeTargets lists the audience of a notice. Empty lists mean everyone.
type NoticeTargets struct {
	Genders     []string `json:"genders"`
	StayTypes   []string `json:"stay_types"`
	Departments []uint   `json:"departments"`
}

// NewNotice is the input of PostNotice.
type NewNotice struct {
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Category  string        `json:"category,omitempty"`
	Priority  string        `json:"priority,omitempty"`
	Targets   NoticeTargets `json:"targets"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
}

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
}
