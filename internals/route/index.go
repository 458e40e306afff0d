// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	recapService "sekolahku_backend/internals/features/school/attendance_recaps/service"
	routeDetails "sekolahku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, recap *recapService.RecapService) {
	startTime = time.Now()

	configs.Log().Info("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== ADMIN =====================
	admin := app.Group("/api/a")

	configs.Log().Info("[INFO] Mounting School routes...", zap.String("prefix", "/api/a"))
	routeDetails.SchoolAdminRoutes(admin, db, recap)
}
