package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	m := New()

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/params/:table", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", m.Handler())

	_, err := app.Test(httptest.NewRequest("GET", "/api/params/lines", nil))
	require.NoError(t, err)
	m.ObserveReorder("lines", nil)
	m.ObserveReorder("lines", errors.New("boom"))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/params/:table",status="200"} 1`)
	assert.Contains(t, string(body), `lookup_reorders_total{result="ok",table="lines"} 1`)
	assert.Contains(t, string(body), `lookup_reorders_total{result="error",table="lines"} 1`)
}

func TestObserveReorderNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveReorder("lines", nil) })
}
