package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_RejectsBeforeTouchingDB(t *testing.T) {
	ctl := NewAnnouncementController(nil)
	app := fiber.New()
	app.Post("/announcements", ctl.Create)

	cases := []struct {
		body   string
		status int
	}{
		{`{"announcement_title":`, fiber.StatusBadRequest},
		{`{"announcement_title":"Libur","announcement_content":""}`, fiber.StatusUnprocessableEntity},
		{`{"announcement_title":"  ab ","announcement_content":"Sekolah libur"}`, fiber.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/announcements", strings.NewReader(tc.body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, tc.status, resp.StatusCode, string(body))
	}
}

func TestInvalidID(t *testing.T) {
	ctl := NewAnnouncementController(nil)
	app := fiber.New()
	app.Get("/announcements/:id", ctl.GetByID)
	app.Delete("/announcements/:id", ctl.Delete)
	app.Patch("/announcements/:id", ctl.Patch)

	for _, method := range []string{http.MethodGet, http.MethodDelete, http.MethodPatch} {
		req := httptest.NewRequest(method, "/announcements/bukan-uuid", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, method)
	}
}
