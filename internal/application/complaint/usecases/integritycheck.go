package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/complaint"
	"campusvoice/internal/shared/logger"
)

const defaultIntegrityBatchSize = 200

// IntegrityCheckUseCase audits every stored complaint against its history,
// escalation chain and votes, and checks that open complaints are assigned
// to an active authority. Violations are logged, never repaired.
type IntegrityCheckUseCase struct {
	complaints    complaint.Repository
	statusUpdates complaint.StatusUpdateRepository
	escalations   complaint.EscalationRepository
	votes         complaint.VoteRepository
	authorities   authority.Repository
	policy        *complaint.PriorityPolicy
	batchSize     int
	logger        logger.Interface
}

func NewIntegrityCheckUseCase(
	complaints complaint.Repository,
	statusUpdates complaint.StatusUpdateRepository,
	escalations complaint.EscalationRepository,
	votes complaint.VoteRepository,
	authorities authority.Repository,
	policy *complaint.PriorityPolicy,
	logger logger.Interface,
) *IntegrityCheckUseCase {
	return &IntegrityCheckUseCase{
		complaints:    complaints,
		statusUpdates: statusUpdates,
		escalations:   escalations,
		votes:         votes,
		authorities:   authorities,
		policy:        policy,
		batchSize:     defaultIntegrityBatchSize,
		logger:        logger,
	}
}

// Execute returns the number of violations found.
func (uc *IntegrityCheckUseCase) Execute(ctx context.Context) (int, error) {
	var (
		afterID    string
		checked    int
		violations int
	)
	for {
		batch, err := uc.complaints.ListAfter(ctx, afterID, uc.batchSize)
		if err != nil {
			return violations, fmt.Errorf("failed to list complaints: %w", err)
		}
		for _, c := range batch {
			found, err := uc.audit(ctx, c)
			if err != nil {
				return violations, err
			}
			for _, v := range found {
				uc.logger.Errorw("complaint integrity violation",
					"complaint_id", v.ComplaintID,
					"kind", v.Kind,
					"detail", v.Detail,
				)
			}
			violations += len(found)
		}
		checked += len(batch)
		if len(batch) < uc.batchSize {
			break
		}
		afterID = batch[len(batch)-1].ID()
		if err := ctx.Err(); err != nil {
			return violations, err
		}
	}

	uc.logger.Debugw("integrity check finished", "checked", checked, "violations", violations)
	return violations, nil
}

func (uc *IntegrityCheckUseCase) audit(ctx context.Context, c *complaint.Complaint) ([]complaint.Violation, error) {
	history, err := uc.statusUpdates.ListByComplaint(ctx, c.ID())
	if err != nil {
		return nil, err
	}
	chain, err := uc.escalations.ListByComplaint(ctx, c.ID())
	if err != nil {
		return nil, err
	}
	up, down, err := uc.votes.Tally(ctx, c.ID())
	if err != nil {
		return nil, err
	}

	violations := complaint.Audit(c, history, chain, up, down, uc.policy)

	if c.Status().IsClosed() {
		return violations, nil
	}
	a, err := uc.authorities.GetByID(ctx, c.AssignedAuthorityID())
	switch {
	case stderrors.Is(err, authority.ErrAuthorityNotFound):
		violations = append(violations, complaint.Violation{
			ComplaintID: c.ID(),
			Kind:        complaint.ViolationAssignee,
			Detail:      fmt.Sprintf("assigned authority %d does not exist", c.AssignedAuthorityID()),
		})
	case err != nil:
		return nil, err
	case !a.IsActive():
		violations = append(violations, complaint.Violation{
			ComplaintID: c.ID(),
			Kind:        complaint.ViolationAssignee,
			Detail:      fmt.Sprintf("assigned authority %d is inactive", a.ID()),
		})
	}
	return violations, nil
}
