// internals/route/details/school_routes.go
package details

import (
	AnnouncementRoutes "sekolahku_backend/internals/features/school/announcements/route"
	AttendanceRoutes "sekolahku_backend/internals/features/school/attendance/route"
	RecapRoutes "sekolahku_backend/internals/features/school/attendance_recaps/route"
	recapService "sekolahku_backend/internals/features/school/attendance_recaps/service"
	DashboardRoutes "sekolahku_backend/internals/features/school/dashboard/route"
	StudentRoutes "sekolahku_backend/internals/features/school/students/route"
	TeacherRoutes "sekolahku_backend/internals/features/school/teachers/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== ADMIN ===================== */
// Semua fitur sekolah: data induk, input presensi, rekap & export, pengumuman, dashboard.
func SchoolAdminRoutes(r fiber.Router, db *gorm.DB, recap *recapService.RecapService) {
	StudentRoutes.StudentAdminRoutes(r, db, recap)
	TeacherRoutes.TeacherAdminRoutes(r, db)
	AttendanceRoutes.AttendanceAdminRoutes(r, db, recap)
	RecapRoutes.AttendanceRecapAdminRoutes(r, recap, recapService.NewGormExportLog(db))
	AnnouncementRoutes.AnnouncementAdminRoutes(r, db)
	DashboardRoutes.DashboardAdminRoutes(r, db)
}
