// file: internals/features/school/students/model/student_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type StudentModel struct {
	// PK = NIS
	StudentID string `gorm:"type:varchar(32);primaryKey;column:student_id" json:"student_id"`

	StudentName     string `gorm:"type:varchar(120);not null;column:student_name;index:idx_students_name" json:"student_name"`
	StudentClass    string `gorm:"type:varchar(16);not null;column:student_class;index:idx_students_class_active,priority:1" json:"student_class"`
	StudentGender   Gender `gorm:"type:varchar(1);not null;default:L;column:student_gender" json:"student_gender"`
	StudentIsActive bool   `gorm:"not null;default:true;column:student_is_active;index:idx_students_class_active,priority:2" json:"student_is_active"`

	// Timestamps
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string {
	return "students"
}
