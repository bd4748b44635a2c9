package notice

import (
	"time"

	"campusvoice/internal/application/notice/usecases"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/notice"
	vo "campusvoice/internal/domain/notice/valueobjects"
)

type CreateNoticeRequest struct {
	Title     string         `json:"title" binding:"required,max=200"`
	Content   string         `json:"content" binding:"required"`
	Category  string         `json:"category"`
	Priority  string         `json:"priority"`
	Targets   TargetsRequest `json:"targets"`
	ExpiresAt *time.Time     `json:"expires_at"`
}

// TargetsRequest narrows the audience. Omitted dimensions default to the
// posting authority's own scope.
type TargetsRequest struct {
	Genders     []string `json:"genders"`
	StayTypes   []string `json:"stay_types"`
	Departments []uint   `json:"departments"`
}

func (r *CreateNoticeRequest) ToCommand(authorityID uint) usecases.CreateNoticeCommand {
	targets := notice.Targets{Departments: r.Targets.Departments}
	for _, g := range r.Targets.Genders {
		targets.Genders = append(targets.Genders, campus.Gender(g))
	}
	for _, s := range r.Targets.StayTypes {
		targets.StayTypes = append(targets.StayTypes, campus.StayType(s))
	}

	return usecases.CreateNoticeCommand{
		AuthorityID: authorityID,
		Title:       r.Title,
		Content:     r.Content,
		Category:    vo.Category(r.Category),
		Priority:    vo.Priority(r.Priority),
		Targets:     targets,
		ExpiresAt:   r.ExpiresAt,
	}
}
