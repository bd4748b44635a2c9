package http

import (
	complaintUsecases "campusvoice/internal/application/complaint/usecases"
	noticeUsecases "campusvoice/internal/application/notice/usecases"
	"campusvoice/internal/domain/routing"
	"campusvoice/internal/infrastructure/cache"
	"campusvoice/internal/infrastructure/email"
	"campusvoice/internal/infrastructure/ratelimit"
	"campusvoice/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the server.
type allUseCases struct {
	// Complaint
	submitComplaintUC   *complaintUsecases.SubmitComplaintUseCase
	transitionStatusUC  *complaintUsecases.TransitionStatusUseCase
	escalateComplaintUC *complaintUsecases.EscalateComplaintUseCase
	castVoteUC          *complaintUsecases.CastVoteUseCase
	removeVoteUC        *complaintUsecases.RemoveVoteUseCase
	getComplaintUC      *complaintUsecases.GetComplaintUseCase
	listFeedUC          *complaintUsecases.ListFeedUseCase
	statusHistoryUC     *complaintUsecases.StatusHistoryUseCase
	escalationHistoryUC *complaintUsecases.EscalationHistoryUseCase
	isVisibleUC         *complaintUsecases.IsVisibleUseCase

	// Notice
	createNoticeUC     *noticeUsecases.CreateNoticeUseCase
	deactivateNoticeUC *noticeUsecases.DeactivateNoticeUseCase
	listNoticesUC      *noticeUsecases.ListNoticesUseCase
}

func (c *Container) newUseCases() (*allUseCases, error) {
	cfg := c.cfg
	log := c.log
	r := c.repos

	policy, err := cfg.PriorityPolicy()
	if err != nil {
		return nil, err
	}
	retry := complaintUsecases.RetryPolicy{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
	}

	var (
		dedup    *cache.AlertDeduplicator
		throttle complaintUsecases.SubmissionThrottle
	)
	if c.redis != nil {
		dedup = cache.NewAlertDeduplicator(c.redis)
		throttle = ratelimit.NewSubmissionThrottle(ratelimit.NewRedisRateLimiter(c.redis), cfg.Throttle)
	}
	alerter := cache.NewRoutingAlerter(dedup, cfg.Routing.AlertCooldown, log.Named("routing-alert"))
	if cfg.Email.Enabled() {
		alerter.WithNotifier(email.NewSMTPAlertMailer(cfg.Email))
	}
	resolver := routing.NewResolver(r.authorities, r.departments, cfg.DepartmentFallback())
	renderer := markdown.NewRenderer()

	return &allUseCases{
		submitComplaintUC: complaintUsecases.NewSubmitComplaintUseCase(
			r.students, r.complaints, r.escalations, resolver, r.txm, c.publisher, alerter, throttle, policy, log,
		),
		transitionStatusUC: complaintUsecases.NewTransitionStatusUseCase(
			r.complaints, r.statusUpdates, r.authorities, r.txm, c.publisher, retry, log,
		),
		escalateComplaintUC: complaintUsecases.NewEscalateComplaintUseCase(
			r.complaints, r.escalations, r.authorities, r.txm, c.publisher, alerter, retry, log,
		),
		castVoteUC: complaintUsecases.NewCastVoteUseCase(
			r.complaints, r.votes, r.students, r.txm, c.publisher, policy, retry, log,
		),
		removeVoteUC: complaintUsecases.NewRemoveVoteUseCase(
			r.complaints, r.votes, r.students, r.txm, c.publisher, policy, retry, log,
		),
		getComplaintUC:      complaintUsecases.NewGetComplaintUseCase(r.complaints, r.students, r.authorities, log),
		listFeedUC:          complaintUsecases.NewListFeedUseCase(r.complaints, r.students, log),
		statusHistoryUC:     complaintUsecases.NewStatusHistoryUseCase(r.complaints, r.statusUpdates, r.students, r.authorities),
		escalationHistoryUC: complaintUsecases.NewEscalationHistoryUseCase(r.complaints, r.escalations, r.students, r.authorities),
		isVisibleUC:         complaintUsecases.NewIsVisibleUseCase(r.complaints, r.students),

		createNoticeUC:     noticeUsecases.NewCreateNoticeUseCase(r.notices, r.authorities, renderer, c.publisher, log),
		deactivateNoticeUC: noticeUsecases.NewDeactivateNoticeUseCase(r.notices, r.authorities, c.publisher, log),
		listNoticesUC:      noticeUsecases.NewListNoticesUseCase(r.notices, r.students, r.authorities, log),
	}, nil
}
