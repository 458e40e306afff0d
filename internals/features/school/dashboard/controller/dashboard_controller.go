package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/school/dashboard/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/dbtime"
)

type DashboardController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db, Now: time.Now}
}

// GET /dashboard/stats
func (ctl *DashboardController) Stats(c *fiber.Ctx) error {
	today := dbtime.TodayIn(dbtime.GetSchoolLocation(c), ctl.Now())
	st, err := service.Compute(c.UserContext(), ctl.DB, today)
	if err != nil {
		configs.Log().Error("❌ gagal hitung statistik dashboard", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	return helper.JsonOK(c, "Statistik dashboard", st)
}

// GET /dashboard/teachers/:id/stats
func (ctl *DashboardController) TeacherStats(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "teacher_id tidak valid")
	}

	today := dbtime.TodayIn(dbtime.GetSchoolLocation(c), ctl.Now())
	st, err := service.ComputeTeacher(c.UserContext(), ctl.DB, id, today)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Guru tidak ditemukan")
		}
		configs.Log().Error("❌ gagal hitung statistik guru", zap.String("teacher_id", id.String()), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik guru")
	}
	return helper.JsonOK(c, "Statistik guru", st)
}
