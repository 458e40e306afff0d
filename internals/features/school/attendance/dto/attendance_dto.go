// file: internals/features/school/attendance/dto/attendance_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance/service"
	"sekolahku_backend/internals/helpers/dbtime"
)

/* ===================== SAVE SESSION ===================== */

type SessionEntry struct {
	StudentID string  `json:"student_id" validate:"required,max=32"`
	Status    string  `json:"status"     validate:"omitempty,max=16"`
	Note      *string `json:"note"       validate:"omitempty,max=500"`
}

// SaveSessionRequest: POST /attendance/sessions
//
//	{"class":"7A","date":"2025-01-06","mode":"homeroom","entries":[{"student_id":"1001","status":"hadir"}]}
//	{"class":"7A","date":"2025-01-06","default_status":"hadir"}   // tandai semua hadir
type SaveSessionRequest struct {
	Class         string         `json:"class"          validate:"required,max=16"`
	Date          string         `json:"date"           validate:"required"`
	Mode          string         `json:"mode"           validate:"omitempty,oneof=homeroom walikelas daily harian subject mapel"`
	Subject       *string        `json:"subject"        validate:"omitempty,max=80"`
	TeacherID     *uuid.UUID     `json:"teacher_id"`
	Semester      *string        `json:"semester"       validate:"omitempty,oneof=ganjil genap"`
	AcademicYear  *string        `json:"academic_year"  validate:"omitempty,max=16"`
	DefaultStatus string         `json:"default_status" validate:"omitempty,max=16"`
	Entries       []SessionEntry `json:"entries"        validate:"omitempty,dive"`
}

func (r SaveSessionRequest) ToSession() (service.Session, error) {
	d, err := dbtime.ParseDate(r.Date)
	if err != nil {
		return service.Session{}, err
	}
	return service.Session{
		Class:        strings.TrimSpace(r.Class),
		Date:         d,
		Type:         model.SessionType(strings.ToLower(strings.TrimSpace(r.Mode))),
		Subject:      r.Subject,
		TeacherID:    r.TeacherID,
		Semester:     r.Semester,
		AcademicYear: r.AcademicYear,
	}, nil
}

func (r SaveSessionRequest) ToMarks() []service.Mark {
	out := make([]service.Mark, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, service.Mark{StudentID: e.StudentID, Status: e.Status, Note: e.Note})
	}
	return out
}

/* ===================== LIST QUERY ===================== */

type SessionQuery struct {
	Class   string `query:"class"   validate:"required,max=16"`
	Date    string `query:"date"    validate:"required"`
	Mode    string `query:"mode"    validate:"omitempty,oneof=homeroom walikelas daily harian subject mapel"`
	Subject string `query:"subject" validate:"omitempty,max=80"`
}

func (q SessionQuery) ToSession() (service.Session, error) {
	d, err := dbtime.ParseDate(q.Date)
	if err != nil {
		return service.Session{}, err
	}
	s := service.Session{
		Class: strings.TrimSpace(q.Class),
		Date:  d,
		Type:  model.SessionType(strings.ToLower(strings.TrimSpace(q.Mode))),
	}
	if subj := strings.TrimSpace(q.Subject); subj != "" {
		s.Subject = &subj
	}
	return s, nil
}

/* ===================== RESPONSE ===================== */

type AttendanceResponse struct {
	AttendanceID        uuid.UUID `json:"attendance_id"`
	AttendanceStudentID string    `json:"attendance_student_id"`
	AttendanceClass     string    `json:"attendance_class"`
	AttendanceType      string    `json:"attendance_type"`
	AttendanceSubject   *string   `json:"attendance_subject,omitempty"`
	AttendanceDate      string    `json:"attendance_date"`
	AttendanceStatus    string    `json:"attendance_status"`
	AttendanceNote      *string   `json:"attendance_note,omitempty"`
	AttendanceUpdatedAt time.Time `json:"attendance_updated_at"`
}

func FromModels(rows []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, AttendanceResponse{
			AttendanceID:        m.AttendanceID,
			AttendanceStudentID: m.AttendanceStudentID,
			AttendanceClass:     m.AttendanceClass,
			AttendanceType:      string(m.AttendanceType),
			AttendanceSubject:   m.AttendanceSubject,
			AttendanceDate:      time.Time(m.AttendanceDate).Format("2006-01-02"),
			AttendanceStatus:    m.AttendanceStatus,
			AttendanceNote:      m.AttendanceNote,
			AttendanceUpdatedAt: m.AttendanceUpdatedAt,
		})
	}
	return out
}
