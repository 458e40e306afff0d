package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var ErrInvalidPeriod = errors.New("periode tidak valid")

type PeriodKind string

const (
	PeriodMonth    PeriodKind = "month"
	PeriodSemester PeriodKind = "semester"
	PeriodCustom   PeriodKind = "custom"
)

const (
	SemesterGanjil = "ganjil" // Juli–Desember
	SemesterGenap  = "genap"  // Januari–Juni
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Period: pilihan periode dari UI/CLI sebelum di-resolve.
type Period struct {
	Kind     PeriodKind `json:"kind"`
	Year     int        `json:"year,omitempty"`
	Month    int        `json:"month,omitempty"`
	Semester string     `json:"semester,omitempty"`
	From     civil.Date `json:"-"`
	To       civil.Date `json:"-"`
}

// DateRange: rentang inklusif [Start, End].
type DateRange struct {
	Start civil.Date `json:"start"`
	End   civil.Date `json:"end"`
}

func (r DateRange) Contains(d civil.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func MonthPeriod(year, month int) Period {
	return Period{Kind: PeriodMonth, Year: year, Month: month}
}

func SemesterPeriod(year int, semester string) Period {
	return Period{Kind: PeriodSemester, Year: year, Semester: strings.ToLower(strings.TrimSpace(semester))}
}

func CustomPeriod(from, to civil.Date) Period {
	return Period{Kind: PeriodCustom, From: from, To: to}
}

// Resolve menghitung rentang tanggal konkret.
func (p Period) Resolve() (DateRange, error) {
	switch p.Kind {
	case PeriodMonth:
		if p.Month < 1 || p.Month > 12 {
			return DateRange{}, fmt.Errorf("%w: bulan %d", ErrInvalidPeriod, p.Month)
		}
		if p.Year <= 0 {
			return DateRange{}, fmt.Errorf("%w: tahun %d", ErrInvalidPeriod, p.Year)
		}
		m := time.Month(p.Month)
		return DateRange{
			Start: civil.Date{Year: p.Year, Month: m, Day: 1},
			End:   civil.Date{Year: p.Year, Month: m, Day: lastDay(p.Year, m)},
		}, nil

	case PeriodSemester:
		if p.Year <= 0 {
			return DateRange{}, fmt.Errorf("%w: tahun %d", ErrInvalidPeriod, p.Year)
		}
		switch p.Semester {
		case SemesterGanjil:
			return DateRange{
				Start: civil.Date{Year: p.Year, Month: time.July, Day: 1},
				End:   civil.Date{Year: p.Year, Month: time.December, Day: 31},
			}, nil
		case SemesterGenap:
			return DateRange{
				Start: civil.Date{Year: p.Year, Month: time.January, Day: 1},
				End:   civil.Date{Year: p.Year, Month: time.June, Day: 30},
			}, nil
		default:
			return DateRange{}, fmt.Errorf("%w: semester %q", ErrInvalidPeriod, p.Semester)
		}

	case PeriodCustom:
		if !p.From.IsValid() || !p.To.IsValid() {
			return DateRange{}, fmt.Errorf("%w: tanggal awal/akhir wajib diisi", ErrInvalidPeriod)
		}
		if p.From.After(p.To) {
			return DateRange{}, fmt.Errorf("%w: %s setelah %s", ErrInvalidPeriod, p.From, p.To)
		}
		return DateRange{Start: p.From, End: p.To}, nil

	default:
		return DateRange{}, fmt.Errorf("%w: jenis %q", ErrInvalidPeriod, p.Kind)
	}
}

// Label untuk judul workbook & nama file.
func (p Period) Label() string {
	switch p.Kind {
	case PeriodMonth:
		if p.Month >= 1 && p.Month <= 12 {
			return fmt.Sprintf("%s %d", monthNames[p.Month-1], p.Year)
		}
	case PeriodSemester:
		return fmt.Sprintf("Semester %s %d", p.Semester, p.Year)
	case PeriodCustom:
		if p.From.IsValid() && p.To.IsValid() {
			return fmt.Sprintf("%s - %s", shortDate(p.From), shortDate(p.To))
		}
		return "Custom Range"
	}
	return "Unknown Period"
}

// shortDate: format d/m/yyyy seperti locale id-ID.
func shortDate(d civil.Date) string {
	return fmt.Sprintf("%d/%d/%d", d.Day, int(d.Month), d.Year)
}

func lastDay(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
