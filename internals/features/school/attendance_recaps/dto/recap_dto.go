// file: internals/features/school/attendance_recaps/dto/recap_dto.go
package dto

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance_recaps/model"
	"sekolahku_backend/internals/features/school/attendance_recaps/service"
	"sekolahku_backend/internals/helpers/dbtime"
)

/* =========================================================
   QUERY
   ========================================================= */

// RecapQuery: query string GET /attendance-recaps (dan /export).
type RecapQuery struct {
	Class    string `query:"class"    validate:"required,max=16"`
	Mode     string `query:"mode"     validate:"omitempty,oneof=homeroom walikelas daily harian subject mapel"`
	Subject  string `query:"subject"  validate:"omitempty,max=80"`
	Period   string `query:"period"   validate:"omitempty,oneof=month semester custom"`
	Year     int    `query:"year"     validate:"omitempty,min=2000,max=2100"`
	Month    int    `query:"month"    validate:"omitempty,min=1,max=12"`
	Semester string `query:"semester" validate:"omitempty,oneof=ganjil genap"`
	From     string `query:"from"`
	To       string `query:"to"`
}

// ToSelector menerjemahkan query ke Selector.
// Tahun/bulan kosong → mengikuti tanggal hari ini (zona sekolah).
func (q RecapQuery) ToSelector(today civil.Date) (service.Selector, error) {
	sel := service.Selector{
		Class:       strings.TrimSpace(q.Class),
		SessionType: attModel.SessionType(strings.ToLower(strings.TrimSpace(q.Mode))),
	}
	if s := strings.TrimSpace(q.Subject); s != "" {
		sel.Subject = &s
	}

	year := q.Year
	if year == 0 {
		year = today.Year
	}

	switch service.PeriodKind(strings.ToLower(strings.TrimSpace(q.Period))) {
	case service.PeriodMonth, "":
		month := q.Month
		if month == 0 {
			month = int(today.Month)
		}
		sel.Period = service.MonthPeriod(year, month)

	case service.PeriodSemester:
		sem := q.Semester
		if sem == "" {
			sem = service.SemesterGenap
			if today.Month >= time.July {
				sem = service.SemesterGanjil
			}
		}
		sel.Period = service.SemesterPeriod(year, sem)

	case service.PeriodCustom:
		from, err := dbtime.ParseDate(q.From)
		if err != nil {
			return sel, fmt.Errorf("%w: from: %v", service.ErrInvalidPeriod, err)
		}
		to, err := dbtime.ParseDate(q.To)
		if err != nil {
			return sel, fmt.Errorf("%w: to: %v", service.ErrInvalidPeriod, err)
		}
		sel.Period = service.CustomPeriod(from, to)

	default:
		return sel, fmt.Errorf("%w: jenis %q", service.ErrInvalidPeriod, q.Period)
	}
	return sel, nil
}

/* =========================================================
   RESPONSE
   ========================================================= */

type StudentRecapResponse struct {
	No         int               `json:"no"`
	StudentID  string            `json:"student_id"`
	Name       string            `json:"name"`
	Daily      map[string]string `json:"daily"` // "YYYY-MM-DD" → H/S/I/A
	Hadir      int               `json:"hadir"`
	Sakit      int               `json:"sakit"`
	Izin       int               `json:"izin"`
	Alpa       int               `json:"alpa"`
	Total      int               `json:"total"`
	Percentage int               `json:"percentage"`
}

type TotalsResponse struct {
	Students int `json:"students"`
	Days     int `json:"days"`
	Hadir    int `json:"hadir"`
	Sakit    int `json:"sakit"`
	Izin     int `json:"izin"`
	Alpa     int `json:"alpa"`
}

type RecapResponse struct {
	Class        string                     `json:"class"`
	SessionType  string                     `json:"session_type"`
	Subject      *string                    `json:"subject,omitempty"`
	Period       string                     `json:"period"`
	Range        service.DateRange          `json:"range"`
	Dates        []string                   `json:"dates"`
	Students     []StudentRecapResponse     `json:"students"`
	Totals       TotalsResponse             `json:"totals"`
	Unrecognized []model.UnrecognizedStatus `json:"unrecognized,omitempty"`
	Orphans      int                        `json:"orphans"`
	GeneratedAt  time.Time                  `json:"generated_at"`
}

func FromRecap(r *service.Recap) RecapResponse {
	dates := make([]string, 0, len(r.Dates))
	for _, d := range r.Dates {
		dates = append(dates, d.String())
	}

	students := make([]StudentRecapResponse, 0, len(r.Recaps))
	for _, sr := range r.Recaps {
		daily := make(map[string]string, len(sr.Daily))
		for d, st := range sr.Daily {
			daily[d.String()] = st.Code()
		}
		students = append(students, StudentRecapResponse{
			No:         sr.No,
			StudentID:  sr.StudentID,
			Name:       sr.Name,
			Daily:      daily,
			Hadir:      sr.Present,
			Sakit:      sr.Sick,
			Izin:       sr.Permitted,
			Alpa:       sr.Absent,
			Total:      sr.Total,
			Percentage: sr.Percentage,
		})
	}

	t := service.Totals(r.Recaps)
	return RecapResponse{
		Class:       r.Selector.Class,
		SessionType: string(r.Selector.SessionType),
		Subject:     r.Selector.Subject,
		Period:      r.PeriodLabel,
		Range:       r.Range,
		Dates:       dates,
		Students:    students,
		Totals: TotalsResponse{
			Students: len(r.Recaps),
			Days:     len(r.Dates),
			Hadir:    t[model.StatusPresent],
			Sakit:    t[model.StatusSick],
			Izin:     t[model.StatusPermitted],
			Alpa:     t[model.StatusAbsent],
		},
		Unrecognized: r.Unrecognized,
		Orphans:      r.Orphans,
		GeneratedAt:  r.GeneratedAt,
	}
}

/* =========================================================
   EXPORT LOGS
   ========================================================= */

type ExportLogResponse struct {
	ID           string    `json:"id"`
	Class        string    `json:"class"`
	SessionType  string    `json:"session_type"`
	Subject      *string   `json:"subject,omitempty"`
	Period       string    `json:"period"`
	FileName     string    `json:"file_name"`
	StudentCount int       `json:"student_count"`
	DateCount    int       `json:"date_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromExportLogModels(rows []model.ExportLogModel) []ExportLogResponse {
	out := make([]ExportLogResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, ExportLogResponse{
			ID:           m.ExportLogID.String(),
			Class:        m.ExportLogClass,
			SessionType:  m.ExportLogSessionType,
			Subject:      m.ExportLogSubject,
			Period:       m.ExportLogPeriod,
			FileName:     m.ExportLogFileName,
			StudentCount: m.ExportLogStudentCount,
			DateCount:    m.ExportLogDateCount,
			CreatedAt:    m.ExportLogCreatedAt,
		})
	}
	return out
}
