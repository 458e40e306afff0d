// file: internals/features/school/dashboard/service/dashboard_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	annModel "sekolahku_backend/internals/features/school/announcements/model"
	attModel "sekolahku_backend/internals/features/school/attendance/model"
	recapModel "sekolahku_backend/internals/features/school/attendance_recaps/model"
	recapSvc "sekolahku_backend/internals/features/school/attendance_recaps/service"
	stuModel "sekolahku_backend/internals/features/school/students/model"
	tchModel "sekolahku_backend/internals/features/school/teachers/model"
)

const recentLimit = 5

type RecentStudent struct {
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	StudentClass string    `json:"student_class"`
	CreatedAt    time.Time `json:"created_at"`
}

type TodayAttendance struct {
	Date  string `json:"date"`
	Hadir int    `json:"hadir"`
	Sakit int    `json:"sakit"`
	Izin  int    `json:"izin"`
	Alpa  int    `json:"alpa"`
}

type RecentAnnouncement struct {
	AnnouncementID uuid.UUID `json:"announcement_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Class          *string   `json:"class,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Stats struct {
	TotalStudents  int64           `json:"total_students"`
	TotalClasses   int64           `json:"total_classes"`
	ActiveStudents int64           `json:"active_students"`
	Male           int64           `json:"male"`
	Female         int64           `json:"female"`
	Recent         []RecentStudent `json:"recent_students"`
	Today          TodayAttendance `json:"today"`

	Announcements []RecentAnnouncement `json:"announcements"`
}

type StatusCount struct {
	Status string
	N      int
}

// FoldToday menjumlahkan hitungan per label mentah ke status kanonik (label tak dikenal dilewati).
func FoldToday(date civil.Date, rows []StatusCount) TodayAttendance {
	t := TodayAttendance{Date: date.String()}
	for _, r := range rows {
		switch recapSvc.NormalizeStatus(r.Status) {
		case recapModel.StatusPresent:
			t.Hadir += r.N
		case recapModel.StatusSick:
			t.Sakit += r.N
		case recapModel.StatusPermitted:
			t.Izin += r.N
		case recapModel.StatusAbsent:
			t.Alpa += r.N
		}
	}
	return t
}

// parallel menjalankan query bersamaan di atas ctx milik errgroup:
// satu query gagal → query lain ikut dibatalkan.
func parallel(ctx context.Context, db *gorm.DB, fns ...func(tx *gorm.DB) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		fn := fn
		g.Go(func() error { return fn(db.WithContext(gctx)) })
	}
	return g.Wait()
}

func recentStudentsQuery(tx *gorm.DB) *gorm.DB {
	return tx.Model(&stuModel.StudentModel{}).Order("student_created_at DESC").Limit(recentLimit)
}

func recentAnnouncementsQuery(tx *gorm.DB) *gorm.DB {
	return tx.Model(&annModel.AnnouncementModel{}).
		Where("announcement_is_active = ?", true).
		Order("announcement_created_at DESC").
		Limit(recentLimit)
}

// todayCountsQuery: hitungan presensi hari ini per label mentah.
// teacherID nil → presensi harian seluruh sekolah; selain itu semua presensi yang dicatat guru tsb.
func todayCountsQuery(tx *gorm.DB, today civil.Date, teacherID *uuid.UUID) *gorm.DB {
	tx = tx.Model(&attModel.AttendanceModel{}).
		Select("attendance_status AS status, COUNT(*) AS n").
		Where("attendance_date = ?", datatypes.Date(today.In(time.UTC)))
	if teacherID == nil {
		tx = tx.Where("attendance_type = ?", attModel.SessionHomeroom)
	} else {
		tx = tx.Where("attendance_teacher_id = ?", *teacherID)
	}
	return tx.Group("attendance_status")
}

// Compute: statistik dashboard, query paralel.
func Compute(ctx context.Context, db *gorm.DB, today civil.Date) (*Stats, error) {
	var (
		st     Stats
		counts []StatusCount
	)
	students := func(tx *gorm.DB) *gorm.DB { return tx.Model(&stuModel.StudentModel{}) }

	err := parallel(ctx, db,
		func(tx *gorm.DB) error { return students(tx).Count(&st.TotalStudents).Error },
		func(tx *gorm.DB) error { return students(tx).Distinct("student_class").Count(&st.TotalClasses).Error },
		func(tx *gorm.DB) error {
			return students(tx).Where("student_is_active = ?", true).Count(&st.ActiveStudents).Error
		},
		func(tx *gorm.DB) error {
			return students(tx).Where("student_gender = ?", stuModel.GenderMale).Count(&st.Male).Error
		},
		func(tx *gorm.DB) error {
			return students(tx).Where("student_gender = ?", stuModel.GenderFemale).Count(&st.Female).Error
		},
		func(tx *gorm.DB) error {
			var rows []stuModel.StudentModel
			if err := recentStudentsQuery(tx).Find(&rows).Error; err != nil {
				return err
			}
			st.Recent = make([]RecentStudent, 0, len(rows))
			for _, r := range rows {
				st.Recent = append(st.Recent, RecentStudent{
					StudentID:    r.StudentID,
					StudentName:  r.StudentName,
					StudentClass: r.StudentClass,
					CreatedAt:    r.StudentCreatedAt,
				})
			}
			return nil
		},
		func(tx *gorm.DB) error {
			var rows []annModel.AnnouncementModel
			if err := recentAnnouncementsQuery(tx).Find(&rows).Error; err != nil {
				return err
			}
			st.Announcements = make([]RecentAnnouncement, 0, len(rows))
			for _, r := range rows {
				st.Announcements = append(st.Announcements, RecentAnnouncement{
					AnnouncementID: r.AnnouncementID,
					Title:          r.AnnouncementTitle,
					Content:        r.AnnouncementContent,
					Class:          r.AnnouncementClass,
					CreatedAt:      r.AnnouncementCreatedAt,
				})
			}
			return nil
		},
		func(tx *gorm.DB) error { return todayCountsQuery(tx, today, nil).Scan(&counts).Error },
	)
	if err != nil {
		return nil, err
	}

	st.Today = FoldToday(today, counts)
	return &st, nil
}

/* ===================== PER GURU ===================== */

var ErrTeacherNotFound = errors.New("guru tidak ditemukan")

type TeacherStats struct {
	TeacherID   uuid.UUID `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
	// Classes: kelas wali + kelas yang pernah dipresensi guru ini.
	Classes []string `json:"classes"`
	// AllClasses: guru belum punya kelas → statistik seluruh sekolah.
	AllClasses     bool            `json:"all_classes"`
	TotalClasses   int             `json:"total_classes"`
	ActiveStudents int64           `json:"active_students"`
	Today          TodayAttendance `json:"today"`
}

// TeachingClasses: gabungan kelas wali dan kelas tercatat, unik dan terurut.
func TeachingClasses(homeroom *string, recorded []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	add := func(c string) {
		c = strings.TrimSpace(c)
		if c == "" {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if homeroom != nil {
		add(*homeroom)
	}
	for _, c := range recorded {
		add(c)
	}
	sort.Strings(out)
	return out
}

func teacherClassesQuery(tx *gorm.DB, teacherID uuid.UUID) *gorm.DB {
	return tx.Model(&attModel.AttendanceModel{}).
		Distinct("attendance_class").
		Where("attendance_teacher_id = ?", teacherID)
}

// activeStudentsQuery: classes kosong → semua kelas.
func activeStudentsQuery(tx *gorm.DB, classes []string) *gorm.DB {
	tx = tx.Model(&stuModel.StudentModel{}).Where("student_is_active = ?", true)
	if len(classes) > 0 {
		tx = tx.Where("student_class IN ?", classes)
	}
	return tx
}

// ComputeTeacher: statistik untuk satu guru.
func ComputeTeacher(ctx context.Context, db *gorm.DB, teacherID uuid.UUID, today civil.Date) (*TeacherStats, error) {
	var t tchModel.TeacherModel
	if err := db.WithContext(ctx).First(&t, "teacher_id = ?", teacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	var recorded []string
	if err := teacherClassesQuery(db.WithContext(ctx), teacherID).Pluck("attendance_class", &recorded).Error; err != nil {
		return nil, err
	}

	st := TeacherStats{
		TeacherID:   t.TeacherID,
		TeacherName: t.TeacherName,
		Classes:     TeachingClasses(t.TeacherHomeroom, recorded),
	}
	st.AllClasses = len(st.Classes) == 0

	var counts []StatusCount
	classes := st.Classes
	fns := []func(tx *gorm.DB) error{
		func(tx *gorm.DB) error { return activeStudentsQuery(tx, classes).Count(&st.ActiveStudents).Error },
		func(tx *gorm.DB) error { return todayCountsQuery(tx, today, &teacherID).Scan(&counts).Error },
	}
	if st.AllClasses {
		fns = append(fns, func(tx *gorm.DB) error {
			return activeStudentsQuery(tx, nil).Distinct("student_class").Order("student_class").Pluck("student_class", &st.Classes).Error
		})
	}
	if err := parallel(ctx, db, fns...); err != nil {
		return nil, err
	}

	st.TotalClasses = len(st.Classes)
	st.Today = FoldToday(today, counts)
	return &st, nil
}
