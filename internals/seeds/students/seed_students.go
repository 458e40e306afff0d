package students

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/school/students/model"
	"sekolahku_backend/internals/seeds/loader"
)

type StudentSeed struct {
	NIS    string `json:"nis"    yaml:"nis"`
	Name   string `json:"name"   yaml:"name"`
	Class  string `json:"class"  yaml:"class"`
	Gender string `json:"gender" yaml:"gender"`
	Active *bool  `json:"active" yaml:"active"`
}

func (s StudentSeed) ToModel() (model.StudentModel, error) {
	m := model.StudentModel{
		StudentID:       strings.TrimSpace(s.NIS),
		StudentName:     strings.TrimSpace(s.Name),
		StudentClass:    strings.TrimSpace(s.Class),
		StudentGender:   model.Gender(strings.ToUpper(strings.TrimSpace(s.Gender))),
		StudentIsActive: true,
	}
	if s.Active != nil {
		m.StudentIsActive = *s.Active
	}
	if m.StudentID == "" || m.StudentName == "" || m.StudentClass == "" {
		return m, fmt.Errorf("nis/nama/kelas wajib diisi (nis=%q)", s.NIS)
	}
	if !m.StudentGender.Valid() {
		return m, fmt.Errorf("gender %q tidak valid untuk nis %s (L/P)", s.Gender, m.StudentID)
	}
	return m, nil
}

// SeedStudentsFromFile: insert siswa, NIS yang sudah ada dilewati.
func SeedStudentsFromFile(db *gorm.DB, path string) (int, error) {
	log := configs.Log()
	log.Info("📥 Membaca file siswa", zap.String("path", path))

	var inputs []StudentSeed
	if err := loader.Decode(path, &inputs); err != nil {
		return 0, err
	}

	rows := make([]model.StudentModel, 0, len(inputs))
	for _, in := range inputs {
		m, err := in.ToModel()
		if err != nil {
			log.Warn("⚠️ baris siswa dilewati", zap.Error(err))
			continue
		}
		rows = append(rows, m)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 200)
	if res.Error != nil {
		return 0, fmt.Errorf("insert siswa: %w", res.Error)
	}
	log.Info("✅ Seed siswa selesai", zap.Int64("inserted", res.RowsAffected), zap.Int("read", len(inputs)))
	return int(res.RowsAffected), nil
}
