package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherStats_InvalidUUID(t *testing.T) {
	ctl := NewDashboardController(nil)
	app := fiber.New()
	app.Get("/dashboard/teachers/:id/stats", ctl.TeacherStats)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/teachers/bukan-uuid/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
