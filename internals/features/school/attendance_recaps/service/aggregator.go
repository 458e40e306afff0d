package service

import (
	"math"
	"sort"

	"cloud.google.com/go/civil"

	"sekolahku_backend/internals/features/school/attendance_recaps/model"
)

// AggregateResult: hasil satu kali agregasi.
type AggregateResult struct {
	Recaps       []model.StudentRecap
	Dates        []civil.Date
	Unrecognized []model.UnrecognizedStatus
	Orphans      int // baris milik siswa di luar roster
}

// Aggregate melipat baris presensi mentah menjadi satu rekap per siswa roster.
// Urutan roster dipertahankan sebagai nomor urut; roster diasumsikan sudah terurut.
func Aggregate(roster []model.Student, records []model.AttendanceRecord) AggregateResult {
	recaps := make([]model.StudentRecap, len(roster))
	index := make(map[string]int, len(roster))
	for i, s := range roster {
		recaps[i] = model.StudentRecap{
			No:        i + 1,
			StudentID: s.ID,
			Name:      s.Name,
			Daily:     map[civil.Date]model.Status{},
		}
		if _, dup := index[s.ID]; !dup {
			index[s.ID] = i
		}
	}

	res := AggregateResult{}
	seen := make(map[civil.Date]struct{})
	for _, rec := range records {
		seen[rec.Date] = struct{}{}

		i, ok := index[rec.StudentID]
		if !ok {
			res.Orphans++
			continue
		}

		st, err := ParseStatus(rec.RawStatus)
		if err != nil {
			res.Unrecognized = append(res.Unrecognized, model.UnrecognizedStatus{
				StudentID: rec.StudentID,
				Date:      rec.Date,
				Raw:       rec.RawStatus,
			})
			continue
		}
		if st == model.StatusNone {
			continue
		}

		r := &recaps[i]
		r.Daily[rec.Date] = st
		switch st {
		case model.StatusPresent:
			r.Present++
		case model.StatusSick:
			r.Sick++
		case model.StatusPermitted:
			r.Permitted++
		case model.StatusAbsent:
			r.Absent++
		}
	}

	for i := range recaps {
		r := &recaps[i]
		r.Total = r.Present + r.Sick + r.Permitted + r.Absent
		r.Percentage = Percentage(r.Present, r.Total)
	}

	res.Recaps = recaps
	res.Dates = sortedDates(seen)
	return res
}

// Percentage = round(present/total*100), 0 bila total 0.
func Percentage(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}

// DateColumns: tanggal unik dari baris presensi, urut naik.
func DateColumns(records []model.AttendanceRecord) []civil.Date {
	seen := make(map[civil.Date]struct{}, len(records))
	for _, rec := range records {
		seen[rec.Date] = struct{}{}
	}
	return sortedDates(seen)
}

func sortedDates(seen map[civil.Date]struct{}) []civil.Date {
	dates := make([]civil.Date, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Totals: jumlah per status untuk seluruh kelas.
func Totals(recaps []model.StudentRecap) map[model.Status]int {
	out := make(map[model.Status]int, len(model.Statuses))
	for _, st := range model.Statuses {
		for _, r := range recaps {
			out[st] += r.Count(st)
		}
	}
	return out
}
