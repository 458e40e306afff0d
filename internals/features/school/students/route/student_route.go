package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/students/controller"
)

// StudentAdminRoutes: CRUD data siswa (roster rekap).
func StudentAdminRoutes(admin fiber.Router, db *gorm.DB, cache controller.CacheInvalidator) {
	ctl := controller.NewStudentController(db, cache)

	g := admin.Group("/students")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}
