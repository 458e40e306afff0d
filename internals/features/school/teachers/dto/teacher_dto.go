// file: internals/features/school/teachers/dto/teacher_dto.go
package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"sekolahku_backend/internals/features/school/teachers/model"
)

// HashPassword: bcrypt cost default.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// CheckPassword: true jika plain cocok dengan hash tersimpan.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func cleanSubjects(in []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

/* ===================== CREATE ===================== */

type CreateTeacherRequest struct {
	Username string   `json:"teacher_username"       validate:"required,min=3,max=64"`
	Name     string   `json:"teacher_name"           validate:"required,max=120"`
	Password string   `json:"password"               validate:"required,min=6,max=72"`
	Subjects []string `json:"teacher_subjects"       validate:"omitempty,dive,max=80"`
	Homeroom *string  `json:"teacher_homeroom_class" validate:"omitempty,max=16"`
	IsActive *bool    `json:"teacher_is_active"`
}

func (r CreateTeacherRequest) ToModel() (model.TeacherModel, error) {
	hash, err := HashPassword(r.Password)
	if err != nil {
		return model.TeacherModel{}, err
	}
	m := model.TeacherModel{
		TeacherUsername:     strings.ToLower(strings.TrimSpace(r.Username)),
		TeacherName:         strings.TrimSpace(r.Name),
		TeacherPasswordHash: hash,
		TeacherSubjects:     cleanSubjects(r.Subjects),
		TeacherIsActive:     true,
	}
	if r.Homeroom != nil {
		if h := strings.TrimSpace(*r.Homeroom); h != "" {
			m.TeacherHomeroom = &h
		}
	}
	if r.IsActive != nil {
		m.TeacherIsActive = *r.IsActive
	}
	return m, nil
}

/* ===================== PATCH ===================== */

type PatchTeacherRequest struct {
	Name     *string   `json:"teacher_name"           validate:"omitempty,max=120"`
	Password *string   `json:"password"               validate:"omitempty,min=6,max=72"`
	Subjects *[]string `json:"teacher_subjects"`
	Homeroom *string   `json:"teacher_homeroom_class" validate:"omitempty,max=16"`
	IsActive *bool     `json:"teacher_is_active"`
}

func (p PatchTeacherRequest) ApplyPatch(m *model.TeacherModel) error {
	if p.Name != nil {
		m.TeacherName = strings.TrimSpace(*p.Name)
	}
	if p.Password != nil {
		hash, err := HashPassword(*p.Password)
		if err != nil {
			return err
		}
		m.TeacherPasswordHash = hash
	}
	if p.Subjects != nil {
		m.TeacherSubjects = cleanSubjects(*p.Subjects)
	}
	if p.Homeroom != nil {
		// string kosong → lepas wali kelas
		if h := strings.TrimSpace(*p.Homeroom); h != "" {
			m.TeacherHomeroom = &h
		} else {
			m.TeacherHomeroom = nil
		}
	}
	if p.IsActive != nil {
		m.TeacherIsActive = *p.IsActive
	}
	return nil
}

/* ===================== RESPONSE ===================== */

type TeacherResponse struct {
	TeacherID        uuid.UUID `json:"teacher_id"`
	TeacherUsername  string    `json:"teacher_username"`
	TeacherName      string    `json:"teacher_name"`
	TeacherSubjects  []string  `json:"teacher_subjects"`
	TeacherHomeroom  *string   `json:"teacher_homeroom_class,omitempty"`
	TeacherIsActive  bool      `json:"teacher_is_active"`
	TeacherCreatedAt time.Time `json:"teacher_created_at"`
}

func FromModel(m model.TeacherModel) TeacherResponse {
	subjects := []string(m.TeacherSubjects)
	if subjects == nil {
		subjects = []string{}
	}
	return TeacherResponse{
		TeacherID:        m.TeacherID,
		TeacherUsername:  m.TeacherUsername,
		TeacherName:      m.TeacherName,
		TeacherSubjects:  subjects,
		TeacherHomeroom:  m.TeacherHomeroom,
		TeacherIsActive:  m.TeacherIsActive,
		TeacherCreatedAt: m.TeacherCreatedAt,
	}
}

func FromModels(rows []model.TeacherModel) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromModel(m))
	}
	return out
}
