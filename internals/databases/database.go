package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	announcementModel "sekolahku_backend/internals/features/school/announcements/model"
	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
	recapModel "sekolahku_backend/internals/features/school/attendance_recaps/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	teacherModel "sekolahku_backend/internals/features/school/teachers/model"
)

var DB *gorm.DB

func ConnectDB() {
	log := configs.Log()
	log.Info("🔌 Koneksi ke PostgreSQL...")

	// ✅ statement_timeout di sisi DB selaras dengan timeout request
	dsn := configs.BuildDSN() + "&application_name=sekolahku&options=-c%20statement_timeout=10000"

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatal("❌ Gagal konek DB", zap.Error(err))
	}
	DB = db
	log.Info("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		configs.Log().Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(DB); err != nil {
			configs.Log().Warn("warm-up ping err", zap.Error(err))
		}
	}()
}

// AutoMigrate membuat/menyesuaikan tabel yang dipakai aplikasi.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&studentModel.StudentModel{},
		&teacherModel.TeacherModel{},
		&attendanceModel.AttendanceModel{},
		&recapModel.ExportLogModel{},
		&announcementModel.AnnouncementModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Ping(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database belum diinisialisasi")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
