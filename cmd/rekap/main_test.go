package main

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recapService "sekolahku_backend/internals/features/school/attendance_recaps/service"
)

var today = civil.Date{Year: 2025, Month: time.February, Day: 10}

func TestExportFlags_Selector(t *testing.T) {
	cases := []struct {
		name  string
		flags exportFlags
		want  recapService.Period
	}{
		{"default bulan ini", exportFlags{class: "7A"}, recapService.MonthPeriod(2025, 2)},
		{"bulan", exportFlags{class: "7A", month: "2024-11"}, recapService.MonthPeriod(2024, 11)},
		{"semester", exportFlags{class: "7A", semester: "GANJIL", year: 2024}, recapService.SemesterPeriod(2024, "ganjil")},
		{"rentang", exportFlags{class: "7A", from: "2025-01-06", to: "31/1/2025"}, recapService.CustomPeriod(
			civil.Date{Year: 2025, Month: time.January, Day: 6},
			civil.Date{Year: 2025, Month: time.January, Day: 31},
		)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := tc.flags.selector(today)
			require.NoError(t, err)
			assert.Equal(t, "7A", sel.Class)
			assert.Equal(t, tc.want, sel.Period)
		})
	}
}

func TestExportFlags_Rejects(t *testing.T) {
	_, err := exportFlags{class: "7A", month: "2025-01", semester: "genap"}.query()
	assert.Error(t, err)

	_, err = exportFlags{class: "7A", month: "Januari"}.query()
	assert.ErrorContains(t, err, "YYYY-MM")

	_, err = exportFlags{class: "7A", from: "2025-01-06"}.selector(today)
	assert.True(t, errors.Is(err, recapService.ErrInvalidPeriod))
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"export", "migrate", "seed"})
}
