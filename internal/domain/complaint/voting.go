package complaint

import (
	"campusvoice/internal/domain/campus"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/shared/biztime"
	"campusvoice/internal/shared/errors"
)

// CastVote applies voter's vote to c. existing is the voter's stored vote
// on c or nil. It returns the vote to persist and whether it is new; an
// opposite existing vote is switched in place.
func CastVote(c *Complaint, voter *campus.Student, existing *Vote, voteType vo.VoteType, policy *PriorityPolicy) (*Vote, bool, error) {
	if !voteType.IsValid() {
		return nil, false, errors.NewValidationError("invalid vote type", string(voteType))
	}
	if voter.RollNo() == c.submitterID {
		return nil, false, ErrSelfVoteForbidden
	}
	if !c.IsVisibleTo(ViewerOf(voter), true) {
		return nil, false, ErrNotVisible
	}
	if c.status.IsClosed() {
		return nil, false, ErrComplaintClosed
	}
	if existing != nil && existing.VoteType() == voteType {
		return nil, false, ErrDuplicateVote
	}

	now := biztime.NowUTC()
	if existing != nil {
		prev := existing.VoteType()
		if err := c.applyVoteChange(&prev, &voteType, policy, now); err != nil {
			return nil, false, err
		}
		existing.voteType = voteType
		existing.updatedAt = now
		return existing, false, nil
	}

	if err := c.applyVoteChange(nil, &voteType, policy, now); err != nil {
		return nil, false, err
	}
	return newVote(c.id, voter.RollNo(), voteType, now), true, nil
}

// RemoveVote withdraws existing from c.
func RemoveVote(c *Complaint, existing *Vote, policy *PriorityPolicy) error {
	if existing == nil {
		return ErrVoteNotFound
	}
	if c.status.IsClosed() {
		return ErrComplaintClosed
	}
	prev := existing.VoteType()
	return c.applyVoteChange(&prev, nil, policy, biztime.NowUTC())
}
