package usecases

import (
	"context"

	"campusvoice/internal/application/complaint/dto"
	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/complaint"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/db"
	"campusvoice/internal/shared/logger"
)

type EscalateComplaintCommand struct {
	ComplaintID string
	AuthorityID uint
	Reason      string
}

type EscalateComplaintResult struct {
	Complaint *dto.ComplaintDTO        `json:"complaint"`
	Record    dto.EscalationRecordDTO `json:"escalation"`
}

type EscalateComplaintUseCase struct {
	complaints  complaint.Repository
	escalations complaint.EscalationRepository
	authorities authority.Repository
	escalator   *complaint.Escalator
	txm         db.TxRunner
	publisher   events.EventPublisher
	alerter     RoutingAlerter
	retry       RetryPolicy
	logger      logger.Interface
}

func NewEscalateComplaintUseCase(
	complaints complaint.Repository,
	escalations complaint.EscalationRepository,
	authorities authority.Repository,
	txm db.TxRunner,
	publisher events.EventPublisher,
	alerter RoutingAlerter,
	retry RetryPolicy,
	logger logger.Interface,
) *EscalateComplaintUseCase {
	return &EscalateComplaintUseCase{
		complaints:  complaints,
		escalations: escalations,
		authorities: authorities,
		escalator:   complaint.NewEscalator(authorities),
		txm:         txm,
		publisher:   publisher,
		alerter:     alerter,
		retry:       retry,
		logger:      logger,
	}
}

type escalation struct {
	complaint *complaint.Complaint
	record    *complaint.EscalationRecord
}

// Execute retires the current record before creating its successor so the
// one-current-record index never sees two rows.
func (uc *EscalateComplaintUseCase) Execute(ctx context.Context, cmd EscalateComplaintCommand) (*EscalateComplaintResult, error) {
	requester, err := loadAuthority(ctx, uc.authorities, cmd.AuthorityID)
	if err != nil {
		return nil, err
	}

	result, err := retryOnConflict(ctx, uc.retry, uc.logger, func() (escalation, error) {
		var out escalation
		err := uc.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
			c, err := uc.complaints.GetByID(txCtx, cmd.ComplaintID)
			if err != nil {
				return err
			}
			current, err := uc.escalations.GetCurrent(txCtx, c.ID())
			if err != nil {
				return err
			}
			record, err := uc.escalator.Escalate(txCtx, c, current, requester, cmd.Reason)
			if err != nil {
				return err
			}
			if err := uc.escalations.Retire(txCtx, current); err != nil {
				return err
			}
			if err := uc.escalations.Create(txCtx, record); err != nil {
				return err
			}
			if err := uc.complaints.Update(txCtx, c); err != nil {
				return err
			}
			out = escalation{complaint: c, record: record}
			return nil
		})
		return out, err
	})
	if err != nil {
		alertIfUnavailable(ctx, uc.alerter, err)
		uc.logger.Warnw("escalation failed",
			"complaint_id", cmd.ComplaintID,
			"authority_id", cmd.AuthorityID,
			"error", err,
		)
		return nil, err
	}

	publishEvents(uc.logger, uc.publisher, result.complaint.PullEvents())

	uc.logger.Infow("complaint escalated",
		"complaint_id", result.complaint.ID(),
		"level", result.record.Level(),
		"to_authority_id", result.record.AuthorityID(),
	)
	return &EscalateComplaintResult{
		Complaint: dto.ToComplaintDTO(result.complaint),
		Record:    dto.ToEscalationRecordDTO(result.record),
	}, nil
}
