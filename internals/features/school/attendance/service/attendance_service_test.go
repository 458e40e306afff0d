package service

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/attendance/model"
	recapSvc "sekolahku_backend/internals/features/school/attendance_recaps/service"
)

var monday = civil.Date{Year: 2025, Month: time.January, Day: 6}

func strp(s string) *string { return &s }

func TestSessionNormalize(t *testing.T) {
	s, err := Session{Class: " 7A ", Date: monday, Type: "walikelas", Subject: strp("IPA")}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "7A", s.Class)
	assert.Equal(t, model.SessionHomeroom, s.Type)
	assert.Nil(t, s.Subject, "presensi harian tidak punya mapel")

	s, err = Session{Class: "7A", Date: monday, Type: "mapel", Subject: strp(" IPA ")}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, model.SessionSubject, s.Type)
	assert.Equal(t, "IPA", *s.Subject)

	for _, bad := range []Session{
		{Class: "", Date: monday},
		{Class: "7A"},
		{Class: "7A", Date: monday, Type: "weekly"},
		{Class: "7A", Date: monday, Type: model.SessionSubject},
		{Class: "7A", Date: monday, Type: model.SessionSubject, Subject: strp("  ")},
	} {
		_, err := bad.Normalize()
		assert.True(t, errors.Is(err, ErrInvalidSession), "%+v", bad)
	}
}

func TestResolveMarks(t *testing.T) {
	roster := []string{"S1", "S2", "S3"}

	got, err := ResolveMarks(roster, []Mark{
		{StudentID: " S2 ", Status: "Sakit", Note: strp("demam")},
		{StudentID: "S1", Status: "h"},
	}, "")
	require.NoError(t, err)

	want := []Mark{
		{StudentID: "S1", Status: "hadir"},
		{StudentID: "S2", Status: "sakit", Note: strp("demam")},
		{StudentID: "S3", Status: "alpa"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ResolveMarks mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveMarks_DefaultStatus(t *testing.T) {
	got, err := ResolveMarks([]string{"S1", "S2"}, []Mark{{StudentID: "S2", Status: "alpha"}}, "hadir")
	require.NoError(t, err)
	assert.Equal(t, "hadir", got[0].Status)
	assert.Equal(t, "alpa", got[1].Status, "ejaan lama disimpan dengan label baku")

	// isian kosong memakai default juga
	got, err = ResolveMarks([]string{"S1"}, []Mark{{StudentID: "S1", Status: " "}}, "izin")
	require.NoError(t, err)
	assert.Equal(t, "izin", got[0].Status)
}

func TestResolveMarks_Rejects(t *testing.T) {
	_, err := ResolveMarks([]string{"S1"}, []Mark{{StudentID: "S9", Status: "hadir"}}, "")
	assert.True(t, errors.Is(err, ErrUnknownStudent))

	_, err = ResolveMarks([]string{"S1"}, []Mark{{StudentID: "S1", Status: "telat"}}, "")
	var le *LabelError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "S1", le.StudentID)
	assert.Equal(t, "telat", le.Raw)
	assert.True(t, errors.Is(err, recapSvc.ErrUnknownStatus))

	_, err = ResolveMarks([]string{"S1"}, nil, "libur")
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "libur", le.Raw)
}

func TestResolveMarks_EmptyRoster(t *testing.T) {
	got, err := ResolveMarks(nil, nil, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCountLabels(t *testing.T) {
	got := CountLabels([]Mark{{Status: "hadir"}, {Status: "hadir"}, {Status: "alpa"}})
	assert.Equal(t, map[string]int{"hadir": 2, "sakit": 0, "izin": 0, "alpa": 1}, got)
}

func TestBuildRows(t *testing.T) {
	s := Session{Class: "7A", Date: monday, Type: model.SessionSubject, Subject: strp("IPA"), Semester: strp("genap")}
	rows := BuildRows(s, []Mark{{StudentID: "S1", Status: "hadir"}, {StudentID: "S2", Status: "izin"}})

	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "7A", r.AttendanceClass)
		assert.Equal(t, model.SessionSubject, r.AttendanceType)
		assert.Equal(t, "IPA", *r.AttendanceSubject)
		assert.Equal(t, "2025-01-06", time.Time(r.AttendanceDate).Format("2006-01-02"))
		assert.Equal(t, "genap", *r.AttendanceSemester)
	}
	assert.Equal(t, "izin", rows[1].AttendanceStatus)
}

func TestSessionScope_SQL(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=rekap dbname=rekap sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	homeroom := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.AttendanceModel
		return SessionScope(tx.Model(&model.AttendanceModel{}), Session{Class: "7A", Date: monday, Type: model.SessionHomeroom}).Find(&rows)
	})
	assert.Contains(t, homeroom, "attendance_class = '7A'")
	assert.Contains(t, homeroom, "attendance_date = '2025-01-06")
	assert.Contains(t, homeroom, "attendance_subject IS NULL")

	subject := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return SessionScope(tx.Unscoped(), Session{Class: "7A", Date: monday, Type: model.SessionSubject, Subject: strp("IPA")}).
			Delete(&model.AttendanceModel{})
	})
	assert.Contains(t, subject, `DELETE FROM "attendance"`)
	assert.Contains(t, subject, "attendance_subject = 'IPA'")
	assert.NotContains(t, subject, "deleted_at", "sesi diganti dengan hard delete")
}
