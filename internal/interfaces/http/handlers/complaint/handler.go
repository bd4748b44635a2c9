// Package complaint exposes the complaint lifecycle over HTTP.
package complaint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusvoice/internal/application/complaint/usecases"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/interfaces/http/middleware"
	"campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/logger"
	"campusvoice/internal/shared/utils"
)

type Handler struct {
	submitUC            usecases.SubmitComplaintExecutor
	transitionUC        usecases.TransitionStatusExecutor
	escalateUC          usecases.EscalateComplaintExecutor
	castVoteUC          usecases.CastVoteExecutor
	removeVoteUC        usecases.RemoveVoteExecutor
	getUC               usecases.GetComplaintExecutor
	listFeedUC          usecases.ListFeedExecutor
	statusHistoryUC     usecases.StatusHistoryExecutor
	escalationHistoryUC usecases.EscalationHistoryExecutor
	isVisibleUC         usecases.IsVisibleExecutor
	logger              logger.Interface
}

func NewHandler(
	submitUC usecases.SubmitComplaintExecutor,
	transitionUC usecases.TransitionStatusExecutor,
	escalateUC usecases.EscalateComplaintExecutor,
	castVoteUC usecases.CastVoteExecutor,
	removeVoteUC usecases.RemoveVoteExecutor,
	getUC usecases.GetComplaintExecutor,
	listFeedUC usecases.ListFeedExecutor,
	statusHistoryUC usecases.StatusHistoryExecutor,
	escalationHistoryUC usecases.EscalationHistoryExecutor,
	isVisibleUC usecases.IsVisibleExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		submitUC:            submitUC,
		transitionUC:        transitionUC,
		escalateUC:          escalateUC,
		castVoteUC:          castVoteUC,
		removeVoteUC:        removeVoteUC,
		getUC:               getUC,
		listFeedUC:          listFeedUC,
		statusHistoryUC:     statusHistoryUC,
		escalationHistoryUC: escalationHistoryUC,
		isVisibleUC:         isVisibleUC,
		logger:              logger,
	}
}

// Submit handles POST /complaints
// @Summary Submit a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param complaint body SubmitComplaintRequest true "Complaint and its classification"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints [post]
func (h *Handler) Submit(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
		return
	}

	var req SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for submit complaint", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd, err := req.ToCommand(studentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Complaint submitted successfully")
}

// Get handles GET /complaints/:id
// @Summary Get a complaint
// @Description Authorities also receive the submitter, redacted unless they may see it.
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /complaints/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := parseComplaintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetComplaintQuery{
		ComplaintID: id,
		Caller:      callerOf(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListFeed handles GET /complaints
// @Summary List the caller's feed
// @Tags complaints
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param include_closed query bool false "Include closed complaints"
// @Param category query string false "Category filter"
// @Param status query string false "Status filter"
// @Success 200 {object} utils.APIResponse
// @Router /complaints [get]
func (h *Handler) ListFeed(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
		return
	}

	query, err := parseFeedQuery(c, studentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listFeedUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Complaints, result.Total, result.Page, result.PageSize)
}

// UpdateStatus handles PATCH /complaints/:id/status
// @Summary Move a complaint to a new status
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param body body UpdateStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /complaints/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	authorityID, ok := middleware.AuthorityID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
		return
	}
	id, err := parseComplaintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	status, err := vo.NewStatus(req.Status)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid status", req.Status))
		return
	}

	result, err := h.transitionUC.Execute(c.Request.Context(), usecases.TransitionStatusCommand{
		ComplaintID: id,
		AuthorityID: authorityID,
		NewStatus:   status,
		Reason:      req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated successfully", result)
}

// Escalate handles POST /complaints/:id/escalate
// @Summary Hand a complaint to the next authority level
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param body body EscalateRequest false "Escalation reason"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /complaints/{id}/escalate [post]
func (h *Handler) Escalate(c *gin.Context) {
	authorityID, ok := middleware.AuthorityID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
		return
	}
	id, err := parseComplaintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req EscalateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
			return
		}
	}

	result, err := h.escalateUC.Execute(c.Request.Context(), usecases.EscalateComplaintCommand{
		ComplaintID: id,
		AuthorityID: authorityID,
		Reason:      req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Complaint escalated successfully", result)
}

// CastVote handles POST /complaints/:id/vote
// @Summary Upvote or downvote a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param body body VoteRequest true "Vote"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /complaints/{id}/vote [post]
func (h *Handler) CastVote(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
		return
	}
	id, err := parseComplaintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.castVoteUC.Execute(c.Request.Context(), usecases.CastVoteCommand{
		ComplaintID: id,
		StudentID:   studentID,
		VoteType:    vo.VoteType(req.VoteType),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RemoveVote handles DELETE /complaints/:id/vote
// @Summary Withdraw the caller's vote
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /complaints/{id}/vote [delete]
func (h *Handler) RemoveVote(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
		return
	}
	id, err := parseComplaintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.removeVoteUC.Execute(c.Request.Context(), usecases.RemoveVoteCommand{
		ComplaintID: id,
		StudentID:   studentID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// StatusHistory handles GET /complaints/:id/history
// @Summary Status change log of a complaint
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} utils.APIResponse
// @Router /complaints/{id}/history [get]
func (h *Handler) StatusHistory(c *gin.Context) {
	id, err := parseComplaintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.statusHistoryUC.Execute(c.Request.Context(), usecases.HistoryQuery{
		ComplaintID: id,
		Caller:      callerOf(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// EscalationHistory handles GET /complaints/:id/escalations
// @Summary Escalation chain of a complaint
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} utils.APIResponse
// @Router /complaints/{id}/escalations [get]
func (h *Handler) EscalationHistory(c *gin.Context) {
	id, err := parseComplaintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.escalationHistoryUC.Execute(c.Request.Context(), usecases.HistoryQuery{
		ComplaintID: id,
		Caller:      callerOf(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Visibility handles GET /complaints/:id/visibility
// @Summary Whether the complaint appears in the caller's feed
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Param include_closed query bool false "Count closed complaints as visible"
// @Success 200 {object} utils.APIResponse
// @Router /complaints/{id}/visibility [get]
func (h *Handler) Visibility(c *gin.Context) {
	studentID, ok := middleware.StudentID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
		return
	}
	id, err := parseComplaintID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	visible, err := h.isVisibleUC.Execute(c.Request.Context(), usecases.IsVisibleQuery{
		ComplaintID:   id,
		StudentID:     studentID,
		IncludeClosed: c.Query("include_closed") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"complaint_id": id, "visible": visible})
}

func callerOf(c *gin.Context) usecases.Caller {
	if id, ok := middleware.AuthorityID(c); ok {
		return usecases.Caller{AuthorityID: id}
	}
	id, _ := middleware.StudentID(c)
	return usecases.Caller{StudentID: id}
}
