// file: internals/features/school/announcements/dto/announcement_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/announcements/model"
)

/* ===================== CREATE ===================== */

type CreateAnnouncementRequest struct {
	Title    string  `json:"announcement_title"     validate:"required,min=3,max=200"`
	Content  string  `json:"announcement_content"   validate:"required,min=3"`
	Class    *string `json:"announcement_class"     validate:"omitempty,max=16"`
	IsActive *bool   `json:"announcement_is_active" validate:"omitempty"`
}

func (r *CreateAnnouncementRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Class = trimOrNil(r.Class)
}

func (r CreateAnnouncementRequest) ToModel() model.AnnouncementModel {
	m := model.AnnouncementModel{
		AnnouncementTitle:    r.Title,
		AnnouncementContent:  r.Content,
		AnnouncementClass:    r.Class,
		AnnouncementIsActive: true,
	}
	if r.IsActive != nil {
		m.AnnouncementIsActive = *r.IsActive
	}
	return m
}

/* ===================== PATCH ===================== */

type PatchAnnouncementRequest struct {
	Title    *string `json:"announcement_title"     validate:"omitempty,min=3,max=200"`
	Content  *string `json:"announcement_content"   validate:"omitempty,min=3"`
	Class    *string `json:"announcement_class"     validate:"omitempty,max=16"`
	IsActive *bool   `json:"announcement_is_active" validate:"omitempty"`
}

// ApplyPatch: class "" → pengumuman jadi global.
func (p PatchAnnouncementRequest) ApplyPatch(m *model.AnnouncementModel) {
	if p.Title != nil {
		m.AnnouncementTitle = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		m.AnnouncementContent = strings.TrimSpace(*p.Content)
	}
	if p.Class != nil {
		m.AnnouncementClass = trimOrNil(p.Class)
	}
	if p.IsActive != nil {
		m.AnnouncementIsActive = *p.IsActive
	}
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* ===================== LIST QUERY ===================== */

// ListAnnouncementQuery: class=7A → pengumuman kelas 7A + pengumuman global.
type ListAnnouncementQuery struct {
	Class    string `query:"class"`
	Q        string `query:"q"`
	IsActive *bool  `query:"is_active"`
}

func (q ListAnnouncementQuery) BuildQuery(tx *gorm.DB) *gorm.DB {
	tx = tx.Model(&model.AnnouncementModel{})
	if c := strings.TrimSpace(q.Class); c != "" {
		tx = tx.Where("(announcement_class = ? OR announcement_class IS NULL)", c)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("(LOWER(announcement_title) LIKE ? OR LOWER(announcement_content) LIKE ?)", like, like)
	}
	if q.IsActive != nil {
		tx = tx.Where("announcement_is_active = ?", *q.IsActive)
	}
	return tx
}

/* ===================== RESPONSE ===================== */

type AnnouncementResponse struct {
	AnnouncementID        uuid.UUID `json:"announcement_id"`
	AnnouncementTitle     string    `json:"announcement_title"`
	AnnouncementContent   string    `json:"announcement_content"`
	AnnouncementClass     *string   `json:"announcement_class,omitempty"`
	AnnouncementIsActive  bool      `json:"announcement_is_active"`
	AnnouncementCreatedAt time.Time `json:"announcement_created_at"`
	AnnouncementUpdatedAt time.Time `json:"announcement_updated_at"`
}

func FromModel(m model.AnnouncementModel) AnnouncementResponse {
	return AnnouncementResponse{
		AnnouncementID:        m.AnnouncementID,
		AnnouncementTitle:     m.AnnouncementTitle,
		AnnouncementContent:   m.AnnouncementContent,
		AnnouncementClass:     m.AnnouncementClass,
		AnnouncementIsActive:  m.AnnouncementIsActive,
		AnnouncementCreatedAt: m.AnnouncementCreatedAt,
		AnnouncementUpdatedAt: m.AnnouncementUpdatedAt,
	}
}

func FromModels(rows []model.AnnouncementModel) []AnnouncementResponse {
	out := make([]AnnouncementResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromModel(m))
	}
	return out
}
