package http

import (
	complaintHandlers "campusvoice/internal/interfaces/http/handlers/complaint"
	noticeHandlers "campusvoice/internal/interfaces/http/handlers/notice"
)

// allHandlers holds all HTTP handler instances used by the server.
type allHandlers struct {
	complaintHandler *complaintHandlers.Handler
	noticeHandler    *noticeHandlers.Handler
}

func (c *Container) newHandlers() *allHandlers {
	u := c.ucs
	return &allHandlers{
		complaintHandler: complaintHandlers.NewHandler(
			u.submitComplaintUC,
			u.transitionStatusUC,
			u.escalateComplaintUC,
			u.castVoteUC,
			u.removeVoteUC,
			u.getComplaintUC,
			u.listFeedUC,
			u.statusHistoryUC,
			u.escalationHistoryUC,
			u.isVisibleUC,
			c.log.Named("complaint-handler"),
		),
		noticeHandler: noticeHandlers.NewHandler(
			u.createNoticeUC,
			u.deactivateNoticeUC,
			u.listNoticesUC,
			c.log.Named("notice-handler"),
		),
	}
}
