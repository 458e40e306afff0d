// file: internals/features/school/attendance_recaps/controller/recap_controller.go
package controller

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/school/attendance_recaps/dto"
	"sekolahku_backend/internals/features/school/attendance_recaps/model"
	"sekolahku_backend/internals/features/school/attendance_recaps/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/dbtime"
)

const (
	HeaderViewKey = "X-View-Key"
	HeaderStale   = "X-Recap-Stale"
)

// ExportLogLister: sumber riwayat export (GormExportLog di produksi).
type ExportLogLister interface {
	List(ctx context.Context, class string, limit, offset int) ([]model.ExportLogModel, int64, error)
}

/* =======================================================
   CONTROLLER
   ======================================================= */

type RecapController struct {
	Svc       *service.RecapService
	Logs      ExportLogLister
	Validator *validator.Validate
	Now       func() time.Time
}

func NewRecapController(svc *service.RecapService, logs ExportLogLister) *RecapController {
	return &RecapController{
		Svc:       svc,
		Logs:      logs,
		Validator: validator.New(),
		Now:       time.Now,
	}
}

func (ctl *RecapController) today(c *fiber.Ctx) civil.Date {
	return dbtime.TodayIn(dbtime.GetSchoolLocation(c), ctl.Now())
}

// selector: parse + validasi query → Selector
func (ctl *RecapController) selector(c *fiber.Ctx) (service.Selector, error) {
	var q dto.RecapQuery
	if err := c.QueryParser(&q); err != nil {
		return service.Selector{}, fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(q); err != nil {
		return service.Selector{}, err
	}
	return q.ToSelector(ctl.today(c))
}

// fail memetakan error pipeline ke HTTP status.
func (ctl *RecapController) fail(c *fiber.Ctx, err error) error {
	var (
		ve validator.ValidationErrors
		fe *fiber.Error
		ge *service.GatewayError
	)
	switch {
	case errors.As(err, &ve):
		return helper.ValidationError(c, err)
	case errors.As(err, &fe):
		return helper.FromFiberError(c, err)
	case errors.Is(err, service.ErrInvalidSelector), errors.Is(err, service.ErrInvalidPeriod):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return helper.JsonError(c, fiber.StatusGatewayTimeout, "Rekap melewati batas waktu, coba lagi")
	case errors.As(err, &ge):
		configs.Log().Error("❌ gateway rekap gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Data presensi sedang tidak bisa diambil")
	default:
		configs.Log().Error("❌ rekap gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun rekap")
	}
}

// track: daftarkan request ke Tracker bila klien mengirim X-View-Key.
func (ctl *RecapController) track(c *fiber.Ctx) (ctx context.Context, stale func() bool, done func()) {
	viewKey := c.Get(HeaderViewKey)
	if viewKey == "" {
		return c.UserContext(), func() bool { return false }, func() {}
	}
	var token uuid.UUID
	ctx, token, done = ctl.Svc.Tracker.Begin(c.UserContext(), viewKey)
	return ctx, func() bool { return !ctl.Svc.Tracker.Current(viewKey, token) }, done
}

func sendStale(c *fiber.Ctx) error {
	c.Set(HeaderStale, "true")
	return c.SendStatus(fiber.StatusNoContent)
}

/* ============================ LIST ============================ */

// GET /attendance-recaps
func (ctl *RecapController) List(c *fiber.Ctx) error {
	sel, err := ctl.selector(c)
	if err != nil {
		return ctl.fail(c, err)
	}

	ctx, stale, done := ctl.track(c)
	defer done()

	r, err := ctl.Svc.Build(ctx, sel)
	if stale() {
		// sudah disusul request lain dari view yang sama → hasil dibuang
		return sendStale(c)
	}
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Rekap presensi berhasil diambil", dto.FromRecap(r))
}

/* ============================ EXPORT ============================ */

// GET /attendance-recaps/export
func (ctl *RecapController) Export(c *fiber.Ctx) error {
	sel, err := ctl.selector(c)
	if err != nil {
		return ctl.fail(c, err)
	}

	ctx, stale, done := ctl.track(c)
	defer done()

	exp, err := ctl.Svc.Export(ctx, sel)
	if stale() {
		return sendStale(c)
	}
	if err != nil {
		return ctl.fail(c, err)
	}
	// hanya export yang benar-benar dikirim masuk riwayat
	ctl.Svc.LogExport(c.UserContext(), exp)

	c.Attachment(exp.FileName)
	c.Set(fiber.HeaderContentType, exp.ContentType)
	return c.Status(fiber.StatusOK).Send(exp.Content)
}

/* ============================ EXPORT LOGS ============================ */

// GET /attendance-recaps/export-logs?class=&page=&per_page=
func (ctl *RecapController) ExportLogs(c *fiber.Ctx) error {
	if ctl.Logs == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Riwayat export tidak aktif")
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	rows, total, err := ctl.Logs.List(c.UserContext(), c.Query("class"), p.Limit(), p.Offset())
	if err != nil {
		configs.Log().Error("❌ gagal ambil export log", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat export")
	}
	return helper.JsonList(c, "Riwayat export", dto.FromExportLogModels(rows), p.Pagination(total))
}
