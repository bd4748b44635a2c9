package usecases

import (
	"context"
	"strings"

	"campusvoice/internal/application/complaint/dto"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/domain/routing"
	"campusvoice/internal/domain/shared/events"
	"campusvoice/internal/shared/db"
	"campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/logger"
)

// Classification is the result of the external classifier. Only its outcome
// is consumed here.
type Classification struct {
	Category      vo.Category
	RephrasedText string
	IsSpam        bool
}

type SubmitComplaintCommand struct {
	StudentID      string
	Text           string
	Classification Classification
	Visibility     vo.Visibility
	BaseTier       vo.PriorityTier
	DepartmentCode string
}

type SubmitComplaintUseCase struct {
	students    campus.StudentRepository
	complaints  complaint.Repository
	escalations complaint.EscalationRepository
	placer      Placer
	txm         db.TxRunner
	publisher   events.EventPublisher
	alerter     RoutingAlerter
	throttle    SubmissionThrottle
	policy      *complaint.PriorityPolicy
	logger      logger.Interface
}

func NewSubmitComplaintUseCase(
	students campus.StudentRepository,
	complaints complaint.Repository,
	escalations complaint.EscalationRepository,
	placer Placer,
	txm db.TxRunner,
	publisher events.EventPublisher,
	alerter RoutingAlerter,
	throttle SubmissionThrottle,
	policy *complaint.PriorityPolicy,
	logger logger.Interface,
) *SubmitComplaintUseCase {
	return &SubmitComplaintUseCase{
		students:    students,
		complaints:  complaints,
		escalations: escalations,
		placer:      placer,
		txm:         txm,
		publisher:   publisher,
		alerter:     alerter,
		throttle:    throttle,
		policy:      policy,
		logger:      logger,
	}
}

func (uc *SubmitComplaintUseCase) Execute(ctx context.Context, cmd SubmitComplaintCommand) (*dto.ComplaintDTO, error) {
	student, err := loadActiveStudent(ctx, uc.students, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	if uc.throttle != nil {
		allowed, err := uc.throttle.Allow(ctx, student.RollNo())
		if err != nil {
			uc.logger.Warnw("submission throttle unavailable, allowing submission",
				"student_id", student.RollNo(),
				"error", err,
			)
		} else if !allowed {
			uc.logger.Infow("submission throttled", "student_id", student.RollNo())
			return nil, errors.NewRateLimitedError("too many complaints submitted, try again later").WithReason("submission_throttled")
		}
	}

	if cmd.Classification.IsSpam {
		uc.logger.Infow("spam submission rejected", "student_id", student.RollNo())
		return nil, complaint.ErrSpamSubmission
	}
	if !cmd.Classification.Category.IsValid() {
		return nil, errors.NewValidationError("invalid category", string(cmd.Classification.Category))
	}

	visibility := cmd.Visibility
	if visibility == "" {
		visibility = vo.VisibilityPublic
	}

	placement, err := uc.placer.Resolve(ctx, routing.Request{
		Category:       cmd.Classification.Category,
		Submitter:      student.Profile(),
		DepartmentCode: strings.TrimSpace(cmd.DepartmentCode),
	})
	if err != nil {
		alertIfUnavailable(ctx, uc.alerter, err)
		uc.logger.Warnw("complaint could not be routed",
			"student_id", student.RollNo(),
			"category", cmd.Classification.Category,
			"error", err,
		)
		return nil, err
	}

	c, record, err := complaint.NewComplaint(complaint.Submission{
		Category:      cmd.Classification.Category,
		OriginalText:  cmd.Text,
		RephrasedText: cmd.Classification.RephrasedText,
		Visibility:    visibility,
		BaseTier:      cmd.BaseTier,
		SubmitterID:   student.RollNo(),
		Submitter:     student.Profile(),
	}, placement, uc.policy)
	if err != nil {
		return nil, err
	}

	if err := uc.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.complaints.Create(txCtx, c); err != nil {
			return err
		}
		return uc.escalations.Create(txCtx, record)
	}); err != nil {
		uc.logger.Errorw("failed to store complaint",
			"student_id", student.RollNo(),
			"error", err,
		)
		return nil, err
	}

	publishEvents(uc.logger, uc.publisher, c.PullEvents())

	uc.logger.Infow("complaint submitted",
		"complaint_id", c.ID(),
		"category", c.Category(),
		"assigned_authority_id", c.AssignedAuthorityID(),
		"cross_department", c.IsCrossDepartment(),
	)
	return dto.ToComplaintDTO(c), nil
}
