package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/dashboard/controller"
)

func DashboardAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)
	admin.Get("/dashboard/stats", ctl.Stats)
	admin.Get("/dashboard/teachers/:id/stats", ctl.TeacherStats)
}
