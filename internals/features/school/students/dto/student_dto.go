// file: internals/features/school/students/dto/student_dto.go
package dto

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/students/model"
)

/* ===================== CREATE ===================== */

type CreateStudentRequest struct {
	StudentID     string `json:"student_id"        validate:"required,max=32"`
	StudentName   string `json:"student_name"      validate:"required,max=120"`
	StudentClass  string `json:"student_class"     validate:"required,max=16"`
	StudentGender string `json:"student_gender"    validate:"required,oneof=L P"`
	IsActive      *bool  `json:"student_is_active" validate:"omitempty"`
}

func (r *CreateStudentRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.StudentClass = strings.TrimSpace(r.StudentClass)
	r.StudentGender = strings.ToUpper(strings.TrimSpace(r.StudentGender))
}

func (r CreateStudentRequest) ToModel() model.StudentModel {
	m := model.StudentModel{
		StudentID:       r.StudentID,
		StudentName:     r.StudentName,
		StudentClass:    r.StudentClass,
		StudentGender:   model.Gender(r.StudentGender),
		StudentIsActive: true,
	}
	if r.IsActive != nil {
		m.StudentIsActive = *r.IsActive
	}
	return m
}

/* ===================== PATCH ===================== */

type PatchStudentRequest struct {
	StudentName   *string `json:"student_name"      validate:"omitempty,max=120"`
	StudentClass  *string `json:"student_class"     validate:"omitempty,max=16"`
	StudentGender *string `json:"student_gender"    validate:"omitempty,oneof=L P"`
	IsActive      *bool   `json:"student_is_active" validate:"omitempty"`
}

// ApplyPatch mengubah model in-place. Return kelas lama bila kelas berubah.
func (p PatchStudentRequest) ApplyPatch(m *model.StudentModel) (prevClass string, classChanged bool) {
	if p.StudentName != nil {
		m.StudentName = strings.TrimSpace(*p.StudentName)
	}
	if p.StudentClass != nil {
		if c := strings.TrimSpace(*p.StudentClass); c != "" && c != m.StudentClass {
			prevClass, classChanged = m.StudentClass, true
			m.StudentClass = c
		}
	}
	if p.StudentGender != nil {
		m.StudentGender = model.Gender(strings.ToUpper(strings.TrimSpace(*p.StudentGender)))
	}
	if p.IsActive != nil {
		m.StudentIsActive = *p.IsActive
	}
	return prevClass, classChanged
}

/* ===================== LIST QUERY ===================== */

type ListStudentQuery struct {
	Class    string `query:"class"`
	Q        string `query:"q"`
	Gender   string `query:"gender" validate:"omitempty,oneof=L P"`
	IsActive *bool  `query:"is_active"`
}

func (q ListStudentQuery) BuildQuery(tx *gorm.DB) *gorm.DB {
	tx = tx.Model(&model.StudentModel{})
	if c := strings.TrimSpace(q.Class); c != "" {
		tx = tx.Where("student_class = ?", c)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("(LOWER(student_name) LIKE ? OR student_id LIKE ?)", like, like)
	}
	if q.Gender != "" {
		tx = tx.Where("student_gender = ?", q.Gender)
	}
	if q.IsActive != nil {
		tx = tx.Where("student_is_active = ?", *q.IsActive)
	}
	return tx
}

/* ===================== RESPONSE ===================== */

type StudentResponse struct {
	StudentID        string    `json:"student_id"`
	StudentName      string    `json:"student_name"`
	StudentClass     string    `json:"student_class"`
	StudentGender    string    `json:"student_gender"`
	StudentIsActive  bool      `json:"student_is_active"`
	StudentCreatedAt time.Time `json:"student_created_at"`
	StudentUpdatedAt time.Time `json:"student_updated_at"`
}

func FromModel(m model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:        m.StudentID,
		StudentName:      m.StudentName,
		StudentClass:     m.StudentClass,
		StudentGender:    string(m.StudentGender),
		StudentIsActive:  m.StudentIsActive,
		StudentCreatedAt: m.StudentCreatedAt,
		StudentUpdatedAt: m.StudentUpdatedAt,
	}
}

func FromModels(rows []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromModel(m))
	}
	return out
}
