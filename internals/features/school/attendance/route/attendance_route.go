package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/attendance/controller"
)

// AttendanceAdminRoutes: input & lihat presensi per sesi.
func AttendanceAdminRoutes(admin fiber.Router, db *gorm.DB, cache controller.CacheInvalidator) {
	ctl := controller.NewAttendanceController(db, cache)

	g := admin.Group("/attendance")
	g.Get("/", ctl.List)
	g.Post("/sessions", ctl.SaveSession)
}
