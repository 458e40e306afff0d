package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/teachers/controller"
)

// TeacherAdminRoutes: CRUD akun guru.
func TeacherAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewTeacherController(db)

	g := admin.Group("/teachers")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}
