package models

import (
	"gorm.io/datatypes"

	"campusvoice/internal/shared/constants"
)

type NoticeModel struct {
	ID                uint           `gorm:"primaryKey"`
	AuthorityID       uint           `gorm:"not null;index"`
	Title             string         `gorm:"size:200;not null"`
	Content           string         `gorm:"type:text;not null"`
	ContentHTML       string         `gorm:"column:content_html;type:text;not null"`
	Category          string         `gorm:"size:20;not null"`
	Priority          string         `gorm:"size:20;not null"`
	TargetGenders     datatypes.JSON `gorm:"type:json;not null"`
	TargetStayTypes   datatypes.JSON `gorm:"type:json;not null"`
	TargetDepartments datatypes.JSON `gorm:"type:json;not null"`
	IsActive          bool           `gorm:"not null;index:idx_notices_active,priority:1"`
	ExpiresAt         *int64         `gorm:"index:idx_notices_active,priority:2"`
	CreatedAt         int64          `gorm:"not null"`
	UpdatedAt         int64          `gorm:"not null"`
}

func (NoticeModel) TableName() string {
	return constants.TableNotices
}
