package complaint

import (
	"fmt"
	"time"

	vo "campusvoice/internal/domain/complaint/valueobjects"
)

// Vote is a student's single opinion on a complaint. Changing sides mutates
// the same vote.
type Vote struct {
	id          uint
	complaintID string
	studentID   string
	voteType    vo.VoteType
	createdAt   time.Time
	updatedAt   time.Time
}

func newVote(complaintID, studentID string, voteType vo.VoteType, at time.Time) *Vote {
	return &Vote{
		complaintID: complaintID,
		studentID:   studentID,
		voteType:    voteType,
		createdAt:   at,
		updatedAt:   at,
	}
}

func ReconstructVote(id uint, complaintID, studentID string, voteType vo.VoteType, createdAt, updatedAt time.Time) (*Vote, error) {
	if id == 0 {
		return nil, fmt.Errorf("vote ID cannot be zero")
	}
	if !voteType.IsValid() {
		return nil, fmt.Errorf("invalid vote type: %s", voteType)
	}
	return &Vote{
		id:          id,
		complaintID: complaintID,
		studentID:   studentID,
		voteType:    voteType,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (v *Vote) ID() uint              { return v.id }
func (v *Vote) ComplaintID() string   { return v.complaintID }
func (v *Vote) StudentID() string     { return v.studentID }
func (v *Vote) VoteType() vo.VoteType { return v.voteType }
func (v *Vote) CreatedAt() time.Time  { return v.createdAt }
func (v *Vote) UpdatedAt() time.Time  { return v.updatedAt }

func (v *Vote) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("vote ID is already set")
	}
	v.id = id
	return nil
}
