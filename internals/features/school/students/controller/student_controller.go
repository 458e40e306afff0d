// file: internals/features/school/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/school/students/dto"
	"sekolahku_backend/internals/features/school/students/model"
	helper "sekolahku_backend/internals/helpers"
)

// CacheInvalidator: buang rekap ter-cache milik kelas (RecapService).
type CacheInvalidator interface {
	Invalidate(class string) int
}

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Cache     CacheInvalidator
}

func NewStudentController(db *gorm.DB, cache CacheInvalidator) *StudentController {
	return &StudentController{DB: db, Validator: validator.New(), Cache: cache}
}

func (ctl *StudentController) invalidate(classes ...string) {
	if ctl.Cache == nil {
		return
	}
	for _, c := range classes {
		if c != "" {
			ctl.Cache.Invalidate(c)
		}
	}
}

var studentSort = map[string]string{
	"name":       "student_name",
	"nis":        "student_id",
	"class":      "student_class",
	"created_at": "student_created_at",
}

/* ============================ LIST ============================ */

// GET /students?class=&q=&gender=&is_active=&page=&per_page=&sort_by=&order=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	var q dto.ListStudentQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}

	p := helper.ParseFiber(c, "name", "asc", helper.AdminOpts)
	order, err := p.SafeOrder(studentSort, "name")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	base := q.BuildQuery(ctl.DB.WithContext(c.UserContext()))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data siswa")
	}
	var rows []model.StudentModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}
	return helper.JsonList(c, "Daftar siswa", dto.FromModels(rows), p.Pagination(total))
}

/* ============================ GET ============================ */

func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	var m model.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "student_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	return helper.JsonOK(c, "Detail siswa", dto.FromModel(m))
}

/* ============================ CREATE ============================ */

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "NIS sudah terdaftar")
		}
		configs.Log().Error("❌ gagal simpan siswa", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan siswa")
	}
	ctl.invalidate(m.StudentClass)
	return helper.JsonCreated(c, "Siswa berhasil ditambahkan", dto.FromModel(m))
}

/* ============================ PATCH ============================ */

func (ctl *StudentController) Patch(c *fiber.Ctx) error {
	var req dto.PatchStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := ctl.DB.WithContext(c.UserContext())
	var m model.StudentModel
	if err := db.First(&m, "student_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	prev, moved := req.ApplyPatch(&m)
	if err := db.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui siswa")
	}
	if moved {
		ctl.invalidate(prev)
	}
	ctl.invalidate(m.StudentClass)
	return helper.JsonUpdated(c, "Siswa diperbarui", dto.FromModel(m))
}

/* ============================ DELETE ============================ */

func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	var m model.StudentModel
	if err := db.First(&m, "student_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	if err := db.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus siswa")
	}
	ctl.invalidate(m.StudentClass)
	return helper.JsonDeleted(c, "Siswa dihapus", fiber.Map{"student_id": m.StudentID})
}

// 23505 = unique_violation (postgres)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
