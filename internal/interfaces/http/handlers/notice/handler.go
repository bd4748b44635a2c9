// Package notice exposes the notice board over HTTP.
package notice

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusvoice/internal/application/notice/usecases"
	"campusvoice/internal/interfaces/http/middleware"
	"campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/logger"
	"campusvoice/internal/shared/utils"
)

type Handler struct {
	createUC     usecases.CreateNoticeExecutor
	deactivateUC usecases.DeactivateNoticeExecutor
	listUC       usecases.ListNoticesExecutor
	logger       logger.Interface
}

func NewHandler(
	createUC usecases.CreateNoticeExecutor,
	deactivateUC usecases.DeactivateNoticeExecutor,
	listUC usecases.ListNoticesExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUC:     createUC,
		deactivateUC: deactivateUC,
		listUC:       listUC,
		logger:       logger,
	}
}

// Create handles POST /notices
// @Summary Post a notice
// @Tags notices
// @Accept json
// @Produce json
// @Param notice body CreateNoticeRequest true "Notice"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /notices [post]
func (h *Handler) Create(c *gin.Context) {
	authorityID, ok := middleware.AuthorityID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
		return
	}

	var req CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create notice", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(authorityID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Notice posted successfully")
}

// List handles GET /notices
// @Summary Live notices for the caller
// @Tags notices
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /notices [get]
func (h *Handler) List(c *gin.Context) {
	var query usecases.ListNoticesQuery
	if id, ok := middleware.AuthorityID(c); ok {
		query.AuthorityID = id
	} else if id, ok := middleware.StudentID(c); ok {
		query.StudentID = id
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Deactivate handles DELETE /notices/:id
// @Summary Take a notice down
// @Tags notices
// @Produce json
// @Param id path int true "Notice ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /notices/{id} [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	authorityID, ok := middleware.AuthorityID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.ErrMissingIdentity)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid notice id", c.Param("id")))
		return
	}

	result, err := h.deactivateUC.Execute(c.Request.Context(), usecases.DeactivateNoticeCommand{
		NoticeID:    uint(id),
		AuthorityID: authorityID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notice deactivated", result)
}
