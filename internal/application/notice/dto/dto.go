package dto

import (
	"time"

	"campusvoice/internal/domain/notice"
)

type NoticeDTO struct {
	ID          uint       `json:"id"`
	AuthorityID uint       `json:"authority_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Targets     TargetsDTO `json:"targets"`
	IsActive    bool       `json:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TargetsDTO lists the audience of a notice. Empty lists mean everyone.
type TargetsDTO struct {
	Genders     []string `json:"genders"`
	StayTypes   []string `json:"stay_types"`
	Departments []uint   `json:"departments"`
}

func ToNoticeDTO(n *notice.Notice) *NoticeDTO {
	if n == nil {
		return nil
	}
	t := n.Targets()
	targets := TargetsDTO{
		Genders:     make([]string, len(t.Genders)),
		StayTypes:   make([]string, len(t.StayTypes)),
		Departments: append([]uint{}, t.Departments...),
	}
	for i, g := range t.Genders {
		targets.Genders[i] = g.String()
	}
	for i, s := range t.StayTypes {
		targets.StayTypes[i] = s.String()
	}

	return &NoticeDTO{
		ID:          n.ID(),
		AuthorityID: n.AuthorityID(),
		Title:       n.Title(),
		Content:     n.Content(),
		ContentHTML: n.ContentHTML(),
		Category:    n.Category().String(),
		Priority:    n.Priority().String(),
		Targets:     targets,
		IsActive:    n.IsActive(),
		ExpiresAt:   n.ExpiresAt(),
		CreatedAt:   n.CreatedAt(),
		UpdatedAt:   n.UpdatedAt(),
	}
}

func ToNoticeDTOList(notices []*notice.Notice) []*NoticeDTO {
	out := make([]*NoticeDTO, len(notices))
	for i, n := range notices {
		out[i] = ToNoticeDTO(n)
	}
	return out
}
