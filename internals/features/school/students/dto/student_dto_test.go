package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/students/model"
)

func ptr[T any](v T) *T { return &v }

func TestCreateStudentRequest(t *testing.T) {
	req := CreateStudentRequest{StudentID: " 1001 ", StudentName: " Ann ", StudentClass: " 7A ", StudentGender: "p"}
	req.Normalize()
	require.NoError(t, validator.New().Struct(req))

	m := req.ToModel()
	assert.Equal(t, "1001", m.StudentID)
	assert.Equal(t, "Ann", m.StudentName)
	assert.Equal(t, "7A", m.StudentClass)
	assert.Equal(t, model.Gender("P"), m.StudentGender)
	assert.True(t, m.StudentIsActive)

	req.IsActive = ptr(false)
	assert.False(t, req.ToModel().StudentIsActive)

	bad := CreateStudentRequest{StudentID: "1", StudentName: "X", StudentClass: "7A", StudentGender: "X"}
	assert.Error(t, validator.New().Struct(bad))
}

func TestPatchStudentRequest_ApplyPatch(t *testing.T) {
	m := model.StudentModel{StudentID: "1001", StudentName: "Ann", StudentClass: "7A", StudentGender: "P", StudentIsActive: true}

	prev, moved := PatchStudentRequest{StudentName: ptr(" Ann B ")}.ApplyPatch(&m)
	assert.False(t, moved)
	assert.Empty(t, prev)
	assert.Equal(t, "Ann B", m.StudentName)

	// kelas sama / kosong bukan perpindahan
	_, moved = PatchStudentRequest{StudentClass: ptr("7A")}.ApplyPatch(&m)
	assert.False(t, moved)
	_, moved = PatchStudentRequest{StudentClass: ptr(" ")}.ApplyPatch(&m)
	assert.False(t, moved)
	assert.Equal(t, "7A", m.StudentClass)

	prev, moved = PatchStudentRequest{StudentClass: ptr("7B"), IsActive: ptr(false)}.ApplyPatch(&m)
	assert.True(t, moved)
	assert.Equal(t, "7A", prev)
	assert.Equal(t, "7B", m.StudentClass)
	assert.False(t, m.StudentIsActive)
}

func TestListStudentQuery_BuildQuery(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=rekap dbname=rekap sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.StudentModel
		return ListStudentQuery{Class: "7A", Q: "Ann", Gender: "P", IsActive: ptr(true)}.BuildQuery(tx).Find(&rows)
	})
	assert.Contains(t, sql, "student_class = '7A'")
	assert.Contains(t, sql, "LOWER(student_name) LIKE '%ann%'")
	assert.Contains(t, sql, "student_gender = 'P'")
	assert.Contains(t, sql, "student_is_active = true")

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.StudentModel
		return ListStudentQuery{}.BuildQuery(tx).Find(&rows)
	})
	assert.NotContains(t, sql, "student_class =")
}
