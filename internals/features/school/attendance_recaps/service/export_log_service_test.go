package service

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance_recaps/model"
)

func TestBuildExportLog(t *testing.T) {
	subj := "IPA"
	sel := Selector{Class: "7A", SessionType: attModel.SessionSubject, Subject: &subj, Period: MonthPeriod(2025, 1)}
	rng, err := sel.Period.Resolve()
	require.NoError(t, err)

	res := Aggregate(
		[]model.Student{{ID: "S1", Name: "Ann"}},
		[]model.AttendanceRecord{
			rec("S1", day(2025, 1, 2), "hadir"),
			rec("S1", day(2025, 1, 3), "telat"),
			rec("S9", day(2025, 1, 3), "hadir"),
		},
	)
	r := &Recap{Selector: sel, Range: rng, PeriodLabel: sel.Period.Label(), AggregateResult: res, GeneratedAt: time.Now()}

	row, err := BuildExportLog(r, "Rekap_Absensi_7A_Januari_2025.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "7A", row.ExportLogClass)
	assert.Equal(t, "subject", row.ExportLogSessionType)
	require.NotNil(t, row.ExportLogSubject)
	assert.Equal(t, "IPA", *row.ExportLogSubject)
	assert.Equal(t, "Januari 2025", row.ExportLogPeriod)
	assert.Equal(t, 1, row.ExportLogStudentCount)
	assert.Equal(t, 2, row.ExportLogDateCount)

	var snap map[string]any
	require.NoError(t, sonic.Unmarshal(row.ExportLogSelector, &snap))
	assert.EqualValues(t, 1, snap["orphans"])
	assert.EqualValues(t, 1, snap["unrecognized"])
	assert.Contains(t, snap, "selector")
	assert.Contains(t, snap, "range")
}
