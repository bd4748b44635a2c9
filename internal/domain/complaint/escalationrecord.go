package complaint

import (
	"fmt"
	"time"

	"campusvoice/internal/domain/authority"
)

// EscalationRecord is one level of a complaint's accountability chain. Level
// 0 is the authority chosen at submission; exactly one record per complaint
// is current.
type EscalationRecord struct {
	id            uint
	complaintID   string
	level         int
	authorityID   uint
	authorityType authority.Type
	authorityName string
	reason        string
	escalatedBy   *uint
	isCurrent     bool
	createdAt     time.Time
}

func newEscalationRecord(complaintID string, level int, to *authority.Authority, reason string, escalatedBy *uint, at time.Time) *EscalationRecord {
	return &EscalationRecord{
		complaintID:   complaintID,
		level:         level,
		authorityID:   to.ID(),
		authorityType: to.Type(),
		authorityName: to.Name(),
		reason:        reason,
		escalatedBy:   escalatedBy,
		isCurrent:     true,
		createdAt:     at,
	}
}

func ReconstructEscalationRecord(
	id uint,
	complaintID string,
	level int,
	authorityID uint,
	authorityType authority.Type,
	authorityName string,
	reason string,
	escalatedBy *uint,
	isCurrent bool,
	createdAt time.Time,
) (*EscalationRecord, error) {
	if id == 0 {
		return nil, fmt.Errorf("escalation record ID cannot be zero")
	}
	if level < 0 {
		return nil, fmt.Errorf("escalation level cannot be negative")
	}
	return &EscalationRecord{
		id:            id,
		complaintID:   complaintID,
		level:         level,
		authorityID:   authorityID,
		authorityType: authorityType,
		authorityName: authorityName,
		reason:        reason,
		escalatedBy:   escalatedBy,
		isCurrent:     isCurrent,
		createdAt:     createdAt,
	}, nil
}

func (r *EscalationRecord) ID() uint                      { return r.id }
func (r *EscalationRecord) ComplaintID() string           { return r.complaintID }
func (r *EscalationRecord) Level() int                    { return r.level }
func (r *EscalationRecord) AuthorityID() uint             { return r.authorityID }
func (r *EscalationRecord) AuthorityType() authority.Type { return r.authorityType }
func (r *EscalationRecord) AuthorityName() string         { return r.authorityName }
func (r *EscalationRecord) Reason() string                { return r.reason }
func (r *EscalationRecord) EscalatedBy() *uint            { return r.escalatedBy }
func (r *EscalationRecord) IsCurrent() bool               { return r.isCurrent }
func (r *EscalationRecord) CreatedAt() time.Time          { return r.createdAt }

func (r *EscalationRecord) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("escalation record ID is already set")
	}
	r.id = id
	return nil
}

func (r *EscalationRecord) retire() {
	r.isCurrent = false
}
