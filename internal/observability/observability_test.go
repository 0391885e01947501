package observability

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/support-desk/internal/config"
)

func TestMetricsSnapshotIsACopy(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/v1/tickets", "GET", 200)
	m.RecordRequest("/api/v1/tickets", "GET", 200)
	m.RecordError("/api/v1/tickets", "PUT", "NOT_FOUND")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["GET /api/v1/tickets 200"])
	assert.Equal(t, int64(1), snap.Errors["PUT /api/v1/tickets NOT_FOUND"])

	snap.Requests["GET /api/v1/tickets 200"] = 100
	assert.Equal(t, int64(2), m.Snapshot().Requests["GET /api/v1/tickets 200"])
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/tickets/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	for _, path := range []string{"/tickets/42", "/tickets/43"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	}

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, "/tickets/42", entry.ContextMap()["path"])
	assert.Equal(t, map[string]int64{"GET /tickets/:id 418": 2}, metrics.Snapshot().Requests)
}

func TestNewLoggerFallsBackOnBadLevel(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "loud", Encoding: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
