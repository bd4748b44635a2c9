package usecases

import (
	"context"

	"campusvoice/internal/application/complaint/dto"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/db"
	"campusvoice/internal/shared/logger"
)

type CastVoteCommand struct {
	ComplaintID string
	StudentID   string
	VoteType    vo.VoteType
}

type RemoveVoteCommand struct {
	ComplaintID string
	StudentID   string
}

// voteStore groups what both vote use cases need.
type voteStore struct {
	complaints complaint.Repository
	votes      complaint.VoteRepository
	students   campus.StudentRepository
	txm        db.TxRunner
	publisher  events.EventPublisher
	policy     *complaint.PriorityPolicy
	retry      RetryPolicy
	logger     logger.Interface
}

type votedComplaint struct {
	complaint *complaint.Complaint
	vote      *complaint.Vote
}

// mutate loads the complaint and the voter's existing vote inside one
// transaction and replays apply on version conflicts.
func (s *voteStore) mutate(
	ctx context.Context,
	complaintID, studentID string,
	apply func(ctx context.Context, c *complaint.Complaint, voter *campus.Student, existing *complaint.Vote) (*complaint.Vote, error),
) (votedComplaint, error) {
	voter, err := loadActiveStudent(ctx, s.students, studentID)
	if err != nil {
		return votedComplaint{}, err
	}
	return retryOnConflict(ctx, s.retry, s.logger, func() (votedComplaint, error) {
		var out votedComplaint
		err := s.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
			c, err := s.complaints.GetByID(txCtx, complaintID)
			if err != nil {
				return err
			}
			existing, err := s.votes.Find(txCtx, c.ID(), voter.RollNo())
			if err != nil {
				return err
			}
			v, err := apply(txCtx, c, voter, existing)
			if err != nil {
				return err
			}
			out = votedComplaint{complaint: c, vote: v}
			return nil
		})
		return out, err
	})
}

type CastVoteUseCase struct {
	voteStore
}

func NewCastVoteUseCase(
	complaints complaint.Repository,
	votes complaint.VoteRepository,
	students campus.StudentRepository,
	txm db.TxRunner,
	publisher events.EventPublisher,
	policy *complaint.PriorityPolicy,
	retry RetryPolicy,
	logger logger.Interface,
) *CastVoteUseCase {
	return &CastVoteUseCase{voteStore{
		complaints: complaints,
		votes:      votes,
		students:   students,
		txm:        txm,
		publisher:  publisher,
		policy:     policy,
		retry:      retry,
		logger:     logger,
	}}
}

func (uc *CastVoteUseCase) Execute(ctx context.Context, cmd CastVoteCommand) (*dto.VoteResultDTO, error) {
	result, err := uc.mutate(ctx, cmd.ComplaintID, cmd.StudentID,
		func(txCtx context.Context, c *complaint.Complaint, voter *campus.Student, existing *complaint.Vote) (*complaint.Vote, error) {
			v, isNew, err := complaint.CastVote(c, voter, existing, cmd.VoteType, uc.policy)
			if err != nil {
				return nil, err
			}
			if err := uc.complaints.Update(txCtx, c); err != nil {
				return nil, err
			}
			if isNew {
				err = uc.votes.Create(txCtx, v)
			} else {
				err = uc.votes.Update(txCtx, v)
			}
			return v, err
		})
	if err != nil {
		uc.logger.Debugw("vote rejected",
			"complaint_id", cmd.ComplaintID,
			"student_id", cmd.StudentID,
			"error", err,
		)
		return nil, err
	}

	publishEvents(uc.logger, uc.publisher, result.complaint.PullEvents())

	uc.logger.Infow("vote recorded",
		"complaint_id", result.complaint.ID(),
		"vote_type", cmd.VoteType,
		"priority_score", result.complaint.PriorityScore(),
	)
	return dto.ToVoteResultDTO(result.complaint, result.vote), nil
}

type RemoveVoteUseCase struct {
	voteStore
}

func NewRemoveVoteUseCase(
	complaints complaint.Repository,
	votes complaint.VoteRepository,
	students campus.StudentRepository,
	txm db.TxRunner,
	publisher events.EventPublisher,
	policy *complaint.PriorityPolicy,
	retry RetryPolicy,
	logger logger.Interface,
) *RemoveVoteUseCase {
	return &RemoveVoteUseCase{voteStore{
		complaints: complaints,
		votes:      votes,
		students:   students,
		txm:        txm,
		publisher:  publisher,
		policy:     policy,
		retry:      retry,
		logger:     logger,
	}}
}

func (uc *RemoveVoteUseCase) Execute(ctx context.Context, cmd RemoveVoteCommand) (*dto.VoteResultDTO, error) {
	result, err := uc.mutate(ctx, cmd.ComplaintID, cmd.StudentID,
		func(txCtx context.Context, c *complaint.Complaint, _ *campus.Student, existing *complaint.Vote) (*complaint.Vote, error) {
			if err := complaint.RemoveVote(c, existing, uc.policy); err != nil {
				return nil, err
			}
			if err := uc.complaints.Update(txCtx, c); err != nil {
				return nil, err
			}
			return nil, uc.votes.Delete(txCtx, existing)
		})
	if err != nil {
		return nil, err
	}

	publishEvents(uc.logger, uc.publisher, result.complaint.PullEvents())

	uc.logger.Infow("vote removed",
		"complaint_id", result.complaint.ID(),
		"student_id", cmd.StudentID,
	)
	return dto.ToVoteResultDTO(result.complaint, nil), nil
}
