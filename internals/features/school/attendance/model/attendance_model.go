// file: internals/features/school/attendance/model/attendance_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionType: presensi harian wali kelas atau presensi per mata pelajaran.
type SessionType string

const (
	SessionHomeroom SessionType = "homeroom"
	SessionSubject  SessionType = "subject"
)

// ParseSessionType menerima nama lama ("walikelas", "daily", "mapel") juga.
func ParseSessionType(s string) (SessionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "homeroom", "walikelas", "wali_kelas", "daily", "harian", "":
		return SessionHomeroom, true
	case "subject", "mapel":
		return SessionSubject, true
	default:
		return "", false
	}
}

type AttendanceModel struct {
	// PK
	AttendanceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_id" json:"attendance_id"`

	// Kunci logis: (student, date, type, subject)
	AttendanceStudentID string         `gorm:"type:varchar(32);not null;column:attendance_student_id;index:idx_attendance_student" json:"attendance_student_id"`
	AttendanceClass     string         `gorm:"type:varchar(16);not null;column:attendance_class;index:idx_attendance_selector,priority:1" json:"attendance_class"`
	AttendanceType      SessionType    `gorm:"type:varchar(16);not null;default:homeroom;column:attendance_type;index:idx_attendance_selector,priority:2" json:"attendance_type"`
	AttendanceSubject   *string        `gorm:"type:varchar(80);column:attendance_subject;index:idx_attendance_selector,priority:3" json:"attendance_subject,omitempty"`
	AttendanceDate      datatypes.Date `gorm:"type:date;not null;column:attendance_date;index:idx_attendance_selector,priority:4" json:"attendance_date"`

	// Label status mentah (hadir/sakit/izin/alpa; ejaan lama "alpha" masih ada di data)
	AttendanceStatus string  `gorm:"type:varchar(16);not null;column:attendance_status" json:"attendance_status"`
	AttendanceNote   *string `gorm:"type:text;column:attendance_note" json:"attendance_note,omitempty"`

	AttendanceTeacherID    *uuid.UUID `gorm:"type:uuid;column:attendance_teacher_id" json:"attendance_teacher_id,omitempty"`
	AttendanceSemester     *string    `gorm:"type:varchar(8);column:attendance_semester" json:"attendance_semester,omitempty"`
	AttendanceAcademicYear *string    `gorm:"type:varchar(16);column:attendance_academic_year" json:"attendance_academic_year,omitempty"`

	// Timestamps
	AttendanceCreatedAt time.Time      `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time      `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at"`
	AttendanceDeletedAt gorm.DeletedAt `gorm:"column:attendance_deleted_at;index" json:"attendance_deleted_at,omitempty"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}
