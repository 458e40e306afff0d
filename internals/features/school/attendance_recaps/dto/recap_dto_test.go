package dto

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance_recaps/model"
	"sekolahku_backend/internals/features/school/attendance_recaps/service"
)

var today = civil.Date{Year: 2025, Month: time.September, Day: 15}

func TestToSelector_Defaults(t *testing.T) {
	sel, err := RecapQuery{Class: " 7A "}.ToSelector(today)
	require.NoError(t, err)

	assert.Equal(t, "7A", sel.Class)
	assert.Nil(t, sel.Subject)
	assert.Equal(t, service.MonthPeriod(2025, 9), sel.Period)
}

func TestToSelector_Semester(t *testing.T) {
	sel, err := RecapQuery{Class: "7A", Period: "semester"}.ToSelector(today)
	require.NoError(t, err)
	assert.Equal(t, service.SemesterPeriod(2025, service.SemesterGanjil), sel.Period)

	march := civil.Date{Year: 2025, Month: time.March, Day: 3}
	sel, err = RecapQuery{Class: "7A", Period: "semester"}.ToSelector(march)
	require.NoError(t, err)
	assert.Equal(t, service.SemesterPeriod(2025, service.SemesterGenap), sel.Period)

	sel, err = RecapQuery{Class: "7A", Period: "semester", Semester: "genap", Year: 2024}.ToSelector(today)
	require.NoError(t, err)
	assert.Equal(t, service.SemesterPeriod(2024, service.SemesterGenap), sel.Period)
}

func TestToSelector_Custom(t *testing.T) {
	sel, err := RecapQuery{Class: "7A", Period: "custom", From: "6/1/2025", To: "2025-01-31"}.ToSelector(today)
	require.NoError(t, err)
	assert.Equal(t, service.CustomPeriod(
		civil.Date{Year: 2025, Month: time.January, Day: 6},
		civil.Date{Year: 2025, Month: time.January, Day: 31},
	), sel.Period)

	for _, q := range []RecapQuery{
		{Class: "7A", Period: "custom", To: "2025-01-31"},
		{Class: "7A", Period: "custom", From: "2025-01-01", To: "besok"},
		{Class: "7A", Period: "weekly"},
	} {
		_, err := q.ToSelector(today)
		assert.True(t, errors.Is(err, service.ErrInvalidPeriod), "%+v → %v", q, err)
	}
}

func TestToSelector_Subject(t *testing.T) {
	sel, err := RecapQuery{Class: "7A", Mode: "mapel", Subject: " IPA "}.ToSelector(today)
	require.NoError(t, err)
	require.NotNil(t, sel.Subject)
	assert.Equal(t, "IPA", *sel.Subject)

	norm, err := sel.Normalize()
	require.NoError(t, err)
	assert.Equal(t, attModel.SessionSubject, norm.SessionType)
}

func TestFromRecap(t *testing.T) {
	d2 := civil.Date{Year: 2025, Month: time.January, Day: 2}
	d3 := civil.Date{Year: 2025, Month: time.January, Day: 3}
	res := service.Aggregate(
		[]model.Student{{ID: "S1", Name: "Ann"}, {ID: "S2", Name: "Budi"}},
		[]model.AttendanceRecord{
			{StudentID: "S1", Date: d2, RawStatus: "hadir"},
			{StudentID: "S1", Date: d3, RawStatus: "izin"},
			{StudentID: "S2", Date: d2, RawStatus: "??"},
		},
	)
	r := &service.Recap{
		Selector:        service.Selector{Class: "7A", SessionType: attModel.SessionHomeroom, Period: service.MonthPeriod(2025, 1)},
		PeriodLabel:     "Januari 2025",
		AggregateResult: res,
	}

	out := FromRecap(r)
	assert.Equal(t, []string{"2025-01-02", "2025-01-03"}, out.Dates)
	require.Len(t, out.Students, 2)
	assert.Equal(t, map[string]string{"2025-01-02": "H", "2025-01-03": "I"}, out.Students[0].Daily)
	assert.Empty(t, out.Students[1].Daily)
	assert.Equal(t, TotalsResponse{Students: 2, Days: 2, Hadir: 1, Izin: 1}, out.Totals)
	require.Len(t, out.Unrecognized, 1)
	assert.Equal(t, "??", out.Unrecognized[0].Raw)
}
