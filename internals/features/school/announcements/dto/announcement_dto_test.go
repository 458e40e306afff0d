package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/announcements/model"
)

func ptr[T any](v T) *T { return &v }

func TestCreateAnnouncementRequest(t *testing.T) {
	req := CreateAnnouncementRequest{Title: " Libur Semester ", Content: " Sekolah libur 2 minggu ", Class: ptr("  ")}
	req.Normalize()
	require.NoError(t, validator.New().Struct(req))

	m := req.ToModel()
	assert.Equal(t, "Libur Semester", m.AnnouncementTitle)
	assert.Equal(t, "Sekolah libur 2 minggu", m.AnnouncementContent)
	assert.Nil(t, m.AnnouncementClass, "kelas kosong → global")
	assert.True(t, m.AnnouncementIsActive)

	req.Class = ptr(" 7A ")
	req.IsActive = ptr(false)
	req.Normalize()
	m = req.ToModel()
	require.NotNil(t, m.AnnouncementClass)
	assert.Equal(t, "7A", *m.AnnouncementClass)
	assert.False(t, m.AnnouncementIsActive)

	assert.Error(t, validator.New().Struct(CreateAnnouncementRequest{Title: "ab", Content: "isi"}))
}

func TestPatchAnnouncementRequest_ApplyPatch(t *testing.T) {
	m := model.AnnouncementModel{AnnouncementTitle: "Rapat", AnnouncementContent: "Rapat wali", AnnouncementClass: ptr("7A"), AnnouncementIsActive: true}

	PatchAnnouncementRequest{Title: ptr(" Rapat Guru ")}.ApplyPatch(&m)
	assert.Equal(t, "Rapat Guru", m.AnnouncementTitle)
	assert.Equal(t, "Rapat wali", m.AnnouncementContent)
	require.NotNil(t, m.AnnouncementClass)

	PatchAnnouncementRequest{Class: ptr(""), IsActive: ptr(false)}.ApplyPatch(&m)
	assert.Nil(t, m.AnnouncementClass)
	assert.False(t, m.AnnouncementIsActive)
}

func TestListAnnouncementQuery_BuildQuery(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=rekap dbname=rekap sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.AnnouncementModel
		return ListAnnouncementQuery{Class: "7A", Q: "Libur", IsActive: ptr(true)}.BuildQuery(tx).Find(&rows)
	})
	assert.Contains(t, sql, "(announcement_class = '7A' OR announcement_class IS NULL)")
	assert.Contains(t, sql, "LOWER(announcement_title) LIKE '%libur%'")
	assert.Contains(t, sql, "announcement_is_active = true")
	assert.Contains(t, sql, "announcement_deleted_at\" IS NULL", "soft delete disaring")

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.AnnouncementModel
		return ListAnnouncementQuery{}.BuildQuery(tx).Find(&rows)
	})
	assert.NotContains(t, sql, "announcement_class =")
}
