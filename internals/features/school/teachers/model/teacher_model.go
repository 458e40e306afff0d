package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TeacherModel struct {
	TeacherID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:teacher_id" json:"teacher_id"`

	TeacherUsername     string         `gorm:"type:varchar(64);not null;uniqueIndex:uq_teachers_username;column:teacher_username" json:"teacher_username"`
	TeacherName         string         `gorm:"type:varchar(120);not null;column:teacher_name" json:"teacher_name"`
	TeacherPasswordHash string         `gorm:"type:text;not null;column:teacher_password_hash" json:"-"`
	TeacherSubjects     pq.StringArray `gorm:"type:text[];column:teacher_subjects" json:"teacher_subjects"`
	TeacherHomeroom     *string        `gorm:"type:varchar(16);column:teacher_homeroom_class" json:"teacher_homeroom_class,omitempty"`
	TeacherIsActive     bool           `gorm:"not null;default:true;column:teacher_is_active" json:"teacher_is_active"`

	TeacherCreatedAt time.Time      `gorm:"column:teacher_created_at;autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time      `gorm:"column:teacher_updated_at;autoUpdateTime" json:"teacher_updated_at"`
	TeacherDeletedAt gorm.DeletedAt `gorm:"column:teacher_deleted_at;index" json:"teacher_deleted_at,omitempty"`
}

func (TeacherModel) TableName() string {
	return "teachers"
}
