package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ExportLogModel struct {
	ExportLogID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:export_log_id" json:"export_log_id"`

	ExportLogClass        string  `gorm:"type:varchar(16);not null;column:export_log_class;index" json:"export_log_class"`
	ExportLogSessionType  string  `gorm:"type:varchar(16);not null;column:export_log_session_type" json:"export_log_session_type"`
	ExportLogSubject      *string `gorm:"type:varchar(80);column:export_log_subject" json:"export_log_subject,omitempty"`
	ExportLogPeriod       string  `gorm:"type:varchar(80);not null;column:export_log_period" json:"export_log_period"`
	ExportLogFileName     string  `gorm:"type:text;not null;column:export_log_file_name" json:"export_log_file_name"`
	ExportLogStudentCount int     `gorm:"not null;default:0;column:export_log_student_count" json:"export_log_student_count"`
	ExportLogDateCount    int     `gorm:"not null;default:0;column:export_log_date_count" json:"export_log_date_count"`

	// snapshot selector (class, mode, subject, range)
	ExportLogSelector datatypes.JSON `gorm:"type:jsonb;column:export_log_selector" json:"export_log_selector"`

	ExportLogCreatedAt time.Time `gorm:"column:export_log_created_at;autoCreateTime;index" json:"export_log_created_at"`
}

func (ExportLogModel) TableName() string {
	return "attendance_export_logs"
}
