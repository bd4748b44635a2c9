package models

import "campusvoice/internal/shared/constants"

type ComplaintModel struct {
	ID                    string  `gorm:"primaryKey;size:36"`
	Category              string  `gorm:"size:40;not null"`
	OriginalText          string  `gorm:"type:text;not null"`
	RephrasedText         *string `gorm:"type:text"`
	Visibility            string  `gorm:"size:20;not null"`
	Status                string  `gorm:"size:20;not null;index:idx_complaints_feed,priority:1"`
	BaseTier              string  `gorm:"size:20;not null"`
	PriorityTier          string  `gorm:"size:20;not null"`
	PriorityScore         float64 `gorm:"not null;index:idx_complaints_feed,priority:2"`
	Upvotes               int     `gorm:"not null"`
	Downvotes             int     `gorm:"not null"`
	IsMarkedAsSpam        bool    `gorm:"not null"`
	AssignedAuthorityID   uint    `gorm:"not null;index"`
	DepartmentID          *uint
	IsCrossDepartment     bool   `gorm:"not null"`
	SubmitterID           string `gorm:"size:40;not null;index"`
	SubmitterGender       string `gorm:"size:10;not null"`
	SubmitterStayType     string `gorm:"size:20;not null"`
	SubmitterDepartmentID uint   `gorm:"not null"`
	SubmittedAt           int64  `gorm:"not null;index:idx_complaints_feed,priority:3"`
	UpdatedAt             int64  `gorm:"not null"`
	ResolvedAt            *int64
	AcknowledgedAt        *int64
	Version               int `gorm:"not null;default:1"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (ComplaintModel) TableName() string {
	return constants.TableComplaints
}

type StatusUpdateModel struct {
	ID          uint   `gorm:"primaryKey"`
	ComplaintID string `gorm:"size:36;not null;index"`
	OldStatus   string `gorm:"size:20;not null"`
	NewStatus   string `gorm:"size:20;not null"`
	ActorID     *uint
	Reason      string `gorm:"type:text;not null"`
	CreatedAt   int64  `gorm:"not null"`
}

func (StatusUpdateModel) TableName() string {
	return constants.TableStatusUpdates
}

type EscalationRecordModel struct {
	ID            uint   `gorm:"primaryKey"`
	ComplaintID   string `gorm:"size:36;not null;uniqueIndex:idx_escalation_records_level,priority:1"`
	Level         int    `gorm:"not null;uniqueIndex:idx_escalation_records_level,priority:2"`
	AuthorityID   uint   `gorm:"not null"`
	AuthorityType string `gorm:"size:40;not null"`
	AuthorityName string `gorm:"size:100;not null"`
	Reason        string `gorm:"type:text;not null"`
	EscalatedBy   *uint
	IsCurrent     bool `gorm:"not null"`
	// CurrentKey holds the complaint id while the record is current and NULL
	// otherwise, so a unique index admits one current record per complaint.
	CurrentKey *string `gorm:"size:36;uniqueIndex:idx_escalation_records_current"`
	CreatedAt  int64   `gorm:"not null"`
}

func (EscalationRecordModel) TableName() string {
	return constants.TableEscalationRecords
}

type VoteModel struct {
	ID          uint   `gorm:"primaryKey"`
	ComplaintID string `gorm:"size:36;not null;uniqueIndex:idx_votes_complaint_student,priority:1"`
	StudentID   string `gorm:"size:40;not null;uniqueIndex:idx_votes_complaint_student,priority:2"`
	VoteType    string `gorm:"size:10;not null"`
	CreatedAt   int64  `gorm:"not null"`
	UpdatedAt   int64  `gorm:"not null"`
}

func (VoteModel) TableName() string {
	return constants.TableVotes
}
