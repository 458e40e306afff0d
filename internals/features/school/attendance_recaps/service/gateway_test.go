package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
	stuModel "sekolahku_backend/internals/features/school/students/model"
)

// dryRunDB: gorm tanpa koneksi, hanya untuk membangun SQL.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=rekap dbname=rekap sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestGormGateway_RosterQuery(t *testing.T) {
	db := dryRunDB(t)
	g := NewGormGateway(db)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []stuModel.StudentModel
		return g.rosterQuery(tx, "7A").Find(&rows)
	})

	assert.Contains(t, sql, `FROM "students"`)
	assert.Contains(t, sql, "student_class = '7A'")
	assert.Contains(t, sql, "student_is_active = true")
	assert.Contains(t, sql, "ORDER BY student_name ASC,student_id ASC")
}

func TestGormGateway_AttendanceQuery(t *testing.T) {
	db := dryRunDB(t)
	g := NewGormGateway(db)
	rng := DateRange{Start: day(2025, 1, 1), End: day(2025, 1, 31)}

	build := func(q AttendanceQuery) string {
		return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var rows []attModel.AttendanceModel
			return g.attendanceQuery(tx, q).Find(&rows)
		})
	}

	t.Run("homeroom tanpa mapel", func(t *testing.T) {
		sql := build(AttendanceQuery{Class: "7A", SessionType: attModel.SessionHomeroom, Range: rng})
		assert.Contains(t, sql, `FROM "attendance"`)
		assert.Contains(t, sql, "attendance_class = '7A' AND attendance_type = 'homeroom'")
		assert.Contains(t, sql, "attendance_date BETWEEN '2025-01-01")
		assert.Contains(t, sql, "'2025-01-31")
		assert.Contains(t, sql, "attendance_subject IS NULL")
		assert.Contains(t, sql, `"attendance"."attendance_deleted_at" IS NULL`)
		assert.Contains(t, sql, "ORDER BY attendance_date ASC,attendance_created_at ASC")
	})

	t.Run("mapel", func(t *testing.T) {
		subj := " IPA "
		sql := build(AttendanceQuery{Class: "7A", SessionType: attModel.SessionSubject, Subject: &subj, Range: rng})
		assert.Contains(t, sql, "attendance_type = 'subject'")
		assert.Contains(t, sql, "attendance_subject = 'IPA'")
		assert.NotContains(t, sql, "attendance_subject IS NULL")
	})
}
