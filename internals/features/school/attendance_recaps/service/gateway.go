package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance_recaps/model"
	stuModel "sekolahku_backend/internals/features/school/students/model"
)

// AttendanceQuery: filter satu seleksi (kelas, jenis sesi, mapel, rentang).
type AttendanceQuery struct {
	Class       string
	SessionType attModel.SessionType
	Subject     *string // nil → hanya baris tanpa mapel
	Range       DateRange
}

// Gateway: akses baca ke store untuk pipeline rekap.
type Gateway interface {
	FetchRoster(ctx context.Context, class string) ([]model.Student, error)
	FetchAttendance(ctx context.Context, q AttendanceQuery) ([]model.AttendanceRecord, error)
}

// GatewayError membungkus kegagalan transport/query dari store.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// GormGateway: implementasi Gateway di atas gorm/postgres.
type GormGateway struct {
	DB *gorm.DB
}

func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{DB: db}
}

func (g *GormGateway) rosterQuery(tx *gorm.DB, class string) *gorm.DB {
	return tx.Model(&stuModel.StudentModel{}).
		Where("student_class = ? AND student_is_active = ?", class, true).
		Order("student_name ASC").
		Order("student_id ASC")
}

func (g *GormGateway) attendanceQuery(tx *gorm.DB, q AttendanceQuery) *gorm.DB {
	tx = tx.Model(&attModel.AttendanceModel{}).
		Select("attendance_student_id", "attendance_date", "attendance_type", "attendance_subject", "attendance_status", "attendance_note").
		Where("attendance_class = ? AND attendance_type = ?", q.Class, q.SessionType).
		Where("attendance_date BETWEEN ? AND ?", toDBDate(q.Range.Start), toDBDate(q.Range.End))

	if q.Subject == nil {
		tx = tx.Where("attendance_subject IS NULL")
	} else {
		tx = tx.Where("attendance_subject = ?", strings.TrimSpace(*q.Subject))
	}
	return tx.Order("attendance_date ASC").Order("attendance_created_at ASC")
}

func (g *GormGateway) FetchRoster(ctx context.Context, class string) ([]model.Student, error) {
	var rows []stuModel.StudentModel
	if err := g.rosterQuery(g.DB.WithContext(ctx), class).Find(&rows).Error; err != nil {
		return nil, &GatewayError{Op: "fetch roster", Err: err}
	}
	out := make([]model.Student, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Student{
			ID:       r.StudentID,
			Name:     r.StudentName,
			Class:    r.StudentClass,
			Gender:   string(r.StudentGender),
			IsActive: r.StudentIsActive,
		})
	}
	return out, nil
}

func (g *GormGateway) FetchAttendance(ctx context.Context, q AttendanceQuery) ([]model.AttendanceRecord, error) {
	var rows []attModel.AttendanceModel
	if err := g.attendanceQuery(g.DB.WithContext(ctx), q).Find(&rows).Error; err != nil {
		return nil, &GatewayError{Op: "fetch attendance", Err: err}
	}
	out := make([]model.AttendanceRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.AttendanceRecord{
			StudentID:   r.AttendanceStudentID,
			Date:        civil.DateOf(time.Time(r.AttendanceDate)),
			SessionType: r.AttendanceType,
			Subject:     r.AttendanceSubject,
			RawStatus:   r.AttendanceStatus,
			Note:        r.AttendanceNote,
		})
	}
	return out, nil
}

func toDBDate(d civil.Date) datatypes.Date {
	return datatypes.Date(d.In(time.UTC))
}
