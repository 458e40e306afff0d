// file: internals/features/school/announcements/controller/announcement_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/school/announcements/dto"
	"sekolahku_backend/internals/features/school/announcements/model"
	helper "sekolahku_backend/internals/helpers"
)

type AnnouncementController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAnnouncementController(db *gorm.DB) *AnnouncementController {
	return &AnnouncementController{DB: db, Validator: validator.New()}
}

var announcementSort = map[string]string{
	"created_at": "announcement_created_at",
	"title":      "announcement_title",
}

func (ctl *AnnouncementController) find(c *fiber.Ctx) (*model.AnnouncementModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "announcement_id tidak valid")
	}
	var m model.AnnouncementModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "announcement_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Pengumuman tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pengumuman")
	}
	return &m, nil
}

/* ============================ LIST ============================ */

// GET /announcements?class=&q=&is_active=&page=&per_page=&sort_by=&order=
func (ctl *AnnouncementController) List(c *fiber.Ctx) error {
	var q dto.ListAnnouncementQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	order, err := p.SafeOrder(announcementSort, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	base := q.BuildQuery(ctl.DB.WithContext(c.UserContext()))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pengumuman")
	}
	var rows []model.AnnouncementModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pengumuman")
	}
	return helper.JsonList(c, "Daftar pengumuman", dto.FromModels(rows), p.Pagination(total))
}

/* ============================ GET ============================ */

func (ctl *AnnouncementController) GetByID(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail pengumuman", dto.FromModel(*m))
}

/* ============================ CREATE ============================ */

func (ctl *AnnouncementController) Create(c *fiber.Ctx) error {
	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		configs.Log().Error("❌ gagal simpan pengumuman", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pengumuman")
	}
	return helper.JsonCreated(c, "Pengumuman berhasil dibuat", dto.FromModel(m))
}

/* ============================ PATCH ============================ */

func (ctl *AnnouncementController) Patch(c *fiber.Ctx) error {
	var req dto.PatchAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	req.ApplyPatch(m)
	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui pengumuman")
	}
	return helper.JsonUpdated(c, "Pengumuman diperbarui", dto.FromModel(*m))
}

/* ============================ DELETE ============================ */

func (ctl *AnnouncementController) Delete(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus pengumuman")
	}
	return helper.JsonDeleted(c, "Pengumuman dihapus", fiber.Map{"announcement_id": m.AnnouncementID})
}
