// file: internals/features/school/attendance_recaps/route/recap_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/school/attendance_recaps/controller"
	"sekolahku_backend/internals/features/school/attendance_recaps/service"
	"sekolahku_backend/internals/middlewares"
)

// AttendanceRecapAdminRoutes: rekap + export workbook.
//
//	admin := app.Group("/api/a")
//	route.AttendanceRecapAdminRoutes(admin, svc, logs)
func AttendanceRecapAdminRoutes(admin fiber.Router, svc *service.RecapService, logs controller.ExportLogLister) {
	ctl := controller.NewRecapController(svc, logs)

	g := admin.Group("/attendance-recaps")
	g.Get("/", ctl.List)
	g.Get("/export", middlewares.ExportRateLimiter(), ctl.Export)
	g.Get("/export-logs", ctl.ExportLogs)
}
