package complaint

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campusvoice/internal/application/complaint/usecases"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/shared/errors"
)

// SubmitComplaintRequest carries the submission together with the outcome
// of the upstream classifier.
type SubmitComplaintRequest struct {
	Text           string `json:"text" binding:"required,max=5000"`
	Category       string `json:"category" binding:"required"`
	RephrasedText  string `json:"rephrased_text" binding:"max=5000"`
	IsSpam         bool   `json:"is_spam"`
	Visibility     string `json:"visibility"`
	Priority       string `json:"priority"`
	DepartmentCode string `json:"department_code" binding:"max=20"`
}

func (r *SubmitComplaintRequest) ToCommand(studentID string) (usecases.SubmitComplaintCommand, error) {
	category, err := vo.NewCategory(r.Category)
	if err != nil {
		return usecases.SubmitComplaintCommand{}, errors.NewValidationError("invalid category", r.Category)
	}

	var visibility vo.Visibility
	if r.Visibility != "" {
		if visibility, err = vo.NewVisibility(r.Visibility); err != nil {
			return usecases.SubmitComplaintCommand{}, errors.NewValidationError("invalid visibility", r.Visibility)
		}
	}

	var tier vo.PriorityTier
	if r.Priority != "" {
		if tier, err = vo.NewPriorityTier(r.Priority); err != nil {
			return usecases.SubmitComplaintCommand{}, errors.NewValidationError("invalid priority", r.Priority)
		}
	}

	return usecases.SubmitComplaintCommand{
		StudentID: studentID,
		Text:      r.Text,
		Classification: usecases.Classification{
			Category:      category,
			RephrasedText: r.RephrasedText,
			IsSpam:        r.IsSpam,
		},
		Visibility:     visibility,
		BaseTier:       tier,
		DepartmentCode: r.DepartmentCode,
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=1000"`
}

type EscalateRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required,oneof=Upvote Downvote"`
}

func parseFeedQuery(c *gin.Context, studentID string) (usecases.ListFeedQuery, error) {
	q := usecases.ListFeedQuery{StudentID: studentID}

	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if raw := c.Query("include_closed"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return q, errors.NewValidationError("invalid include_closed", raw)
		}
		q.IncludeClosed = include
	}

	if raw := c.Query("category"); raw != "" {
		category, err := vo.NewCategory(raw)
		if err != nil {
			return q, errors.NewValidationError("invalid category", raw)
		}
		q.Category = &category
	}

	if raw := c.Query("status"); raw != "" {
		status, err := vo.NewStatus(raw)
		if err != nil {
			return q, errors.NewValidationError("invalid status", raw)
		}
		q.Status = &status
	}

	return q, nil
}

func parseComplaintID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", errors.NewValidationError("complaint id is required")
	}
	return id, nil
}
