package models

import "campusvoice/internal/shared/constants"

type DepartmentModel struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"uniqueIndex;size:20;not null"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (DepartmentModel) TableName() string {
	return constants.TableDepartments
}

type AuthorityModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:255;not null"`
	Type         string `gorm:"column:type;size:40;not null"`
	DepartmentID *uint
	Level        int   `gorm:"not null"`
	IsActive     bool  `gorm:"not null"`
	CreatedAt    int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (AuthorityModel) TableName() string {
	return constants.TableAuthorities
}

type StudentModel struct {
	RollNo       string `gorm:"primaryKey;size:40"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:255;not null"`
	Gender       string `gorm:"size:10;not null"`
	StayType     string `gorm:"size:20;not null"`
	DepartmentID uint   `gorm:"not null"`
	IsActive     bool   `gorm:"not null"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
}

func (StudentModel) TableName() string {
	return constants.TableStudents
}
