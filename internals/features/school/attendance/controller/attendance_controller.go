// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/school/attendance/dto"
	"sekolahku_backend/internals/features/school/attendance/service"
	helper "sekolahku_backend/internals/helpers"
)

// CacheInvalidator: buang rekap ter-cache milik kelas setelah presensi ditulis.
type CacheInvalidator interface {
	Invalidate(class string) int
}

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Cache     CacheInvalidator
}

func NewAttendanceController(db *gorm.DB, cache CacheInvalidator) *AttendanceController {
	return &AttendanceController{DB: db, Validator: validator.New(), Cache: cache}
}

// GET /attendance?class=&date=&mode=&subject=
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	var q dto.SessionQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}
	sess, err := q.ToSession()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rows, err := service.ListSession(c.UserContext(), ctl.DB, sess)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil presensi")
	}
	return helper.JsonOK(c, "Presensi sesi", dto.FromModels(rows))
}

// POST /attendance/sessions
func (ctl *AttendanceController) SaveSession(c *fiber.Ctx) error {
	var req dto.SaveSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	sess, err := req.ToSession()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"date": {err.Error()}})
	}

	res, err := service.SaveSession(c.UserContext(), ctl.DB, sess, req.ToMarks(), req.DefaultStatus)
	if err != nil {
		var le *service.LabelError
		switch {
		case errors.As(err, &le):
			return helper.JsonValidationError(c, map[string][]string{"status": {le.Error()}})
		case errors.Is(err, service.ErrUnknownStudent):
			return helper.JsonValidationError(c, map[string][]string{"student_id": {err.Error()}})
		case errors.Is(err, service.ErrInvalidSession):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		configs.Log().Error("❌ gagal simpan presensi", zap.String("class", sess.Class), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan presensi")
	}

	if ctl.Cache != nil {
		n := ctl.Cache.Invalidate(sess.Class)
		configs.Log().Debug("recap cache invalidated", zap.String("class", sess.Class), zap.Int("entries", n))
	}
	return helper.JsonCreated(c, "Presensi berhasil disimpan", res)
}
