package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Electrotienda-api/internal/interfaces/http"
	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogging(logger.FromZerolog(zerolog.New(&buf))))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/roto", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusConflict) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(apphttp.HeaderCorrelationID, "corr-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "corr-123", resp.Header.Get(apphttp.HeaderCorrelationID))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "/ping", entry["path"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "corr-123", entry["correlation_id"])

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/roto", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderCorrelationID), "se genera si no viene")
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(409), entry["status"])
}
