package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/announcements/controller"
)

// AnnouncementAdminRoutes: pengumuman sekolah (panel "Pengumuman Terkini" di dashboard).
func AnnouncementAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAnnouncementController(db)

	g := admin.Group("/announcements")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}
