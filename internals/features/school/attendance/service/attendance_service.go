// file: internals/features/school/attendance/service/attendance_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/attendance/model"
	recapModel "sekolahku_backend/internals/features/school/attendance_recaps/model"
	recapSvc "sekolahku_backend/internals/features/school/attendance_recaps/service"
	stuModel "sekolahku_backend/internals/features/school/students/model"
)

var (
	ErrInvalidSession = errors.New("sesi presensi tidak valid")
	ErrUnknownStudent = errors.New("siswa tidak terdaftar di kelas")
)

// DefaultStatus: status untuk siswa yang tidak diisi.
const DefaultStatus = recapModel.StatusAbsent

// Session: kunci satu sesi presensi (kelas, tanggal, jenis, mapel).
type Session struct {
	Class        string
	Date         civil.Date
	Type         model.SessionType
	Subject      *string
	TeacherID    *uuid.UUID
	Semester     *string
	AcademicYear *string
}

// Mark: isian satu siswa. Status kosong → pakai default sesi.
type Mark struct {
	StudentID string
	Status    string
	Note      *string
}

// LabelError: label status yang ditolak saat input.
type LabelError struct {
	StudentID string
	Raw       string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("status %q untuk siswa %s tidak dikenal", e.Raw, e.StudentID)
}

func (e *LabelError) Unwrap() error { return recapSvc.ErrUnknownStatus }

type SaveResult struct {
	Saved  int            `json:"saved"`
	Counts map[string]int `json:"counts"` // hadir/sakit/izin/alpa
}

// Normalize memvalidasi kunci sesi.
func (s Session) Normalize() (Session, error) {
	s.Class = strings.TrimSpace(s.Class)
	if s.Class == "" {
		return s, fmt.Errorf("%w: kelas wajib diisi", ErrInvalidSession)
	}
	if !s.Date.IsValid() {
		return s, fmt.Errorf("%w: tanggal wajib diisi", ErrInvalidSession)
	}
	st, ok := model.ParseSessionType(string(s.Type))
	if !ok {
		return s, fmt.Errorf("%w: jenis sesi %q", ErrInvalidSession, s.Type)
	}
	s.Type = st
	if st == model.SessionSubject {
		if s.Subject == nil || strings.TrimSpace(*s.Subject) == "" {
			return s, fmt.Errorf("%w: mata pelajaran wajib diisi", ErrInvalidSession)
		}
		subj := strings.TrimSpace(*s.Subject)
		s.Subject = &subj
	} else {
		s.Subject = nil
	}
	return s, nil
}

// SessionScope: filter baris milik satu sesi.
func SessionScope(tx *gorm.DB, s Session) *gorm.DB {
	tx = tx.Where("attendance_class = ? AND attendance_date = ? AND attendance_type = ?",
		s.Class, datatypes.Date(s.Date.In(time.UTC)), s.Type)
	if s.Subject == nil {
		return tx.Where("attendance_subject IS NULL")
	}
	return tx.Where("attendance_subject = ?", *s.Subject)
}

// ResolveMarks menggabungkan roster + isian: siswa tanpa isian mendapat defaultStatus.
// Label dinormalisasi ke label simpan (hadir/sakit/izin/alpa).
func ResolveMarks(roster []string, marks []Mark, defaultStatus string) ([]Mark, error) {
	def := DefaultStatus
	if strings.TrimSpace(defaultStatus) != "" {
		st, err := recapSvc.ParseStatus(defaultStatus)
		if err != nil {
			return nil, &LabelError{StudentID: "*", Raw: defaultStatus}
		}
		def = st
	}

	inRoster := make(map[string]struct{}, len(roster))
	for _, id := range roster {
		inRoster[id] = struct{}{}
	}

	given := make(map[string]Mark, len(marks))
	for _, m := range marks {
		m.StudentID = strings.TrimSpace(m.StudentID)
		if _, ok := inRoster[m.StudentID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStudent, m.StudentID)
		}
		given[m.StudentID] = m
	}

	out := make([]Mark, 0, len(roster))
	for _, id := range roster {
		m, ok := given[id]
		if !ok {
			m = Mark{StudentID: id}
		}
		st, err := recapSvc.ParseStatus(m.Status)
		if err != nil {
			return nil, &LabelError{StudentID: id, Raw: m.Status}
		}
		if st == recapModel.StatusNone {
			st = def
		}
		m.Status = recapSvc.StorageLabel(st)
		out = append(out, m)
	}
	return out, nil
}

// SaveSession mengganti seluruh isi sesi dalam satu transaksi (hapus lalu insert).
func SaveSession(ctx context.Context, db *gorm.DB, s Session, marks []Mark, defaultStatus string) (SaveResult, error) {
	s, err := s.Normalize()
	if err != nil {
		return SaveResult{}, err
	}

	var res SaveResult
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roster []string
		if err := tx.Model(&stuModel.StudentModel{}).
			Where("student_class = ? AND student_is_active = ?", s.Class, true).
			Order("student_name ASC").
			Pluck("student_id", &roster).Error; err != nil {
			return err
		}

		resolved, err := ResolveMarks(roster, marks, defaultStatus)
		if err != nil {
			return err
		}

		// hard delete: sesi diganti total
		if err := SessionScope(tx.Unscoped(), s).Delete(&model.AttendanceModel{}).Error; err != nil {
			return err
		}

		rows := BuildRows(s, resolved)
		if len(rows) > 0 {
			if err := tx.CreateInBatches(&rows, 200).Error; err != nil {
				return err
			}
		}
		res = SaveResult{Saved: len(rows), Counts: CountLabels(resolved)}
		return nil
	})
	return res, err
}

func BuildRows(s Session, marks []Mark) []model.AttendanceModel {
	rows := make([]model.AttendanceModel, 0, len(marks))
	for _, m := range marks {
		rows = append(rows, model.AttendanceModel{
			AttendanceStudentID:    m.StudentID,
			AttendanceClass:        s.Class,
			AttendanceType:         s.Type,
			AttendanceSubject:      s.Subject,
			AttendanceDate:         datatypes.Date(s.Date.In(time.UTC)),
			AttendanceStatus:       m.Status,
			AttendanceNote:         m.Note,
			AttendanceTeacherID:    s.TeacherID,
			AttendanceSemester:     s.Semester,
			AttendanceAcademicYear: s.AcademicYear,
		})
	}
	return rows
}

// CountLabels: jumlah per label simpan.
func CountLabels(marks []Mark) map[string]int {
	out := map[string]int{}
	for _, st := range recapModel.Statuses {
		out[recapSvc.StorageLabel(st)] = 0
	}
	for _, m := range marks {
		out[recapSvc.StorageLabel(recapSvc.NormalizeStatus(m.Status))]++
	}
	return out
}

// ListSession: baris presensi satu sesi, urut NIS.
func ListSession(ctx context.Context, db *gorm.DB, s Session) ([]model.AttendanceModel, error) {
	s, err := s.Normalize()
	if err != nil {
		return nil, err
	}
	var rows []model.AttendanceModel
	err = SessionScope(db.WithContext(ctx).Model(&model.AttendanceModel{}), s).
		Order("attendance_student_id ASC").
		Find(&rows).Error
	return rows, err
}
