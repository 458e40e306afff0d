// file: internals/features/school/announcements/model/announcement_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementModel struct {
	AnnouncementID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:announcement_id" json:"announcement_id"`

	AnnouncementTitle   string `gorm:"type:varchar(200);not null;column:announcement_title" json:"announcement_title"`
	AnnouncementContent string `gorm:"type:text;not null;column:announcement_content" json:"announcement_content"`
	// NULL = untuk semua kelas
	AnnouncementClass    *string `gorm:"type:varchar(16);column:announcement_class;index:idx_announcements_class_active,priority:1" json:"announcement_class,omitempty"`
	AnnouncementIsActive bool    `gorm:"not null;default:true;column:announcement_is_active;index:idx_announcements_class_active,priority:2" json:"announcement_is_active"`

	AnnouncementCreatedAt time.Time      `gorm:"column:announcement_created_at;autoCreateTime;index" json:"announcement_created_at"`
	AnnouncementUpdatedAt time.Time      `gorm:"column:announcement_updated_at;autoUpdateTime" json:"announcement_updated_at"`
	AnnouncementDeletedAt gorm.DeletedAt `gorm:"column:announcement_deleted_at;index" json:"announcement_deleted_at,omitempty"`
}

func (AnnouncementModel) TableName() string {
	return "announcements"
}
