package teachers

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/school/teachers/dto"
	"sekolahku_backend/internals/features/school/teachers/model"
	"sekolahku_backend/internals/seeds/loader"
)

type TeacherSeed struct {
	Username string   `json:"username" yaml:"username"`
	Name     string   `json:"name"     yaml:"name"`
	Password string   `json:"password" yaml:"password"`
	Subjects []string `json:"subjects" yaml:"subjects"`
	Homeroom string   `json:"homeroom" yaml:"homeroom"`
}

func (s TeacherSeed) Request() dto.CreateTeacherRequest {
	req := dto.CreateTeacherRequest{
		Username: s.Username,
		Name:     s.Name,
		Password: s.Password,
		Subjects: s.Subjects,
	}
	if h := strings.TrimSpace(s.Homeroom); h != "" {
		req.Homeroom = &h
	}
	return req
}

// SeedTeachersFromFile: insert guru, username yang sudah ada dilewati.
func SeedTeachersFromFile(db *gorm.DB, path string) (int, error) {
	log := configs.Log()
	log.Info("📥 Membaca file guru", zap.String("path", path))

	var inputs []TeacherSeed
	if err := loader.Decode(path, &inputs); err != nil {
		return 0, err
	}

	inserted := 0
	for _, in := range inputs {
		username := strings.ToLower(strings.TrimSpace(in.Username))
		if username == "" || in.Password == "" {
			log.Warn("⚠️ guru tanpa username/password dilewati", zap.String("name", in.Name))
			continue
		}

		var existing model.TeacherModel
		err := db.Where("teacher_username = ?", username).First(&existing).Error
		if err == nil {
			log.Info("ℹ️ Guru sudah ada, dilewati", zap.String("username", username))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return inserted, fmt.Errorf("cek guru %s: %w", username, err)
		}

		m, err := in.Request().ToModel()
		if err != nil {
			return inserted, err
		}
		if err := db.Create(&m).Error; err != nil {
			log.Error("❌ Gagal insert guru", zap.String("username", username), zap.Error(err))
			continue
		}
		inserted++
	}
	log.Info("✅ Seed guru selesai", zap.Int("inserted", inserted), zap.Int("read", len(inputs)))
	return inserted, nil
}
