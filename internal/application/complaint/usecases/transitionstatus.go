package usecases

import (
	"context"

	"campusvoice/internal/application/complaint/dto"
	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/db"
	"campusvoice/internal/shared/logger"
)

type TransitionStatusCommand struct {
	ComplaintID string
	AuthorityID uint
	NewStatus   vo.Status
	Reason      string
}

type TransitionStatusUseCase struct {
	complaints    complaint.Repository
	statusUpdates complaint.StatusUpdateRepository
	authorities   authority.Repository
	txm           db.TxRunner
	publisher     events.EventPublisher
	retry         RetryPolicy
	logger        logger.Interface
}

func NewTransitionStatusUseCase(
	complaints complaint.Repository,
	statusUpdates complaint.StatusUpdateRepository,
	authorities authority.Repository,
	txm db.TxRunner,
	publisher events.EventPublisher,
	retry RetryPolicy,
	logger logger.Interface,
) *TransitionStatusUseCase {
	return &TransitionStatusUseCase{
		complaints:    complaints,
		statusUpdates: statusUpdates,
		authorities:   authorities,
		txm:           txm,
		publisher:     publisher,
		retry:         retry,
		logger:        logger,
	}
}

func (uc *TransitionStatusUseCase) Execute(ctx context.Context, cmd TransitionStatusCommand) (*dto.ComplaintDTO, error) {
	actor, err := loadAuthority(ctx, uc.authorities, cmd.AuthorityID)
	if err != nil {
		return nil, err
	}

	c, err := retryOnConflict(ctx, uc.retry, uc.logger, func() (*complaint.Complaint, error) {
		var updated *complaint.Complaint
		err := uc.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
			c, err := uc.complaints.GetByID(txCtx, cmd.ComplaintID)
			if err != nil {
				return err
			}
			update, err := c.UpdateStatus(cmd.NewStatus, actor, cmd.Reason)
			if err != nil {
				return err
			}
			if err := uc.complaints.Update(txCtx, c); err != nil {
				return err
			}
			if err := uc.statusUpdates.Append(txCtx, update); err != nil {
				return err
			}
			updated = c
			return nil
		})
		return updated, err
	})
	if err != nil {
		uc.logger.Warnw("status transition failed",
			"complaint_id", cmd.ComplaintID,
			"authority_id", cmd.AuthorityID,
			"to", cmd.NewStatus,
			"error", err,
		)
		return nil, err
	}

	publishEvents(uc.logger, uc.publisher, c.PullEvents())

	uc.logger.Infow("complaint status updated",
		"complaint_id", c.ID(),
		"authority_id", actor.ID(),
		"status", c.Status(),
	)
	return dto.ToComplaintDTO(c), nil
}
