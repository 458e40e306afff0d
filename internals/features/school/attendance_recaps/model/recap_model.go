// file: internals/features/school/attendance_recaps/model/recap_model.go
package model

import (
	"cloud.google.com/go/civil"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
)

// Status: status kanonik hasil normalisasi label mentah.
type Status string

const (
	StatusNone      Status = "" // tidak ada catatan / label tidak dikenal
	StatusPresent   Status = "present"
	StatusSick      Status = "sick"
	StatusPermitted Status = "permitted"
	StatusAbsent    Status = "absent"
)

// Statuses berurutan seperti di lembar ringkasan (Hadir, Sakit, Izin, Alpa).
var Statuses = []Status{StatusPresent, StatusSick, StatusPermitted, StatusAbsent}

// Code: kode satu huruf di sel tanggal.
func (s Status) Code() string {
	switch s {
	case StatusPresent:
		return "H"
	case StatusSick:
		return "S"
	case StatusPermitted:
		return "I"
	case StatusAbsent:
		return "A"
	default:
		return ""
	}
}

func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Hadir"
	case StatusSick:
		return "Sakit"
	case StatusPermitted:
		return "Izin"
	case StatusAbsent:
		return "Alpa"
	default:
		return ""
	}
}

// Student: anggota roster kelas.
type Student struct {
	ID       string
	Name     string
	Class    string
	Gender   string
	IsActive bool
}

// AttendanceRecord: satu baris presensi mentah dari store.
type AttendanceRecord struct {
	StudentID   string
	Date        civil.Date
	SessionType attModel.SessionType
	Subject     *string
	RawStatus   string
	Note        *string
}

// StudentRecap: rekap satu siswa untuk satu rentang tanggal.
type StudentRecap struct {
	No         int
	StudentID  string
	Name       string
	Daily      map[civil.Date]Status
	Present    int
	Sick       int
	Permitted  int
	Absent     int
	Total      int
	Percentage int
}

func (r StudentRecap) StatusOn(d civil.Date) Status {
	return r.Daily[d]
}

func (r StudentRecap) Count(s Status) int {
	switch s {
	case StatusPresent:
		return r.Present
	case StatusSick:
		return r.Sick
	case StatusPermitted:
		return r.Permitted
	case StatusAbsent:
		return r.Absent
	default:
		return 0
	}
}

// UnrecognizedStatus: label yang tidak bisa dipetakan (tidak dihitung).
type UnrecognizedStatus struct {
	StudentID string     `json:"student_id"`
	Date      civil.Date `json:"date"`
	Raw       string     `json:"raw"`
}

// Meta: label yang dicetak di workbook.
type Meta struct {
	Period        string
	Class         string
	SubjectOrMode string
}
