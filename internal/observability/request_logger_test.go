package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestLoggerAssignsRequestID(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), metrics))
	var seenID string
	app.Get("/ping", func(c *fiber.Ctx) error {
		seenID = RequestIDFromContext(c)
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)

	assert.NotEmpty(t, seenID)
	assert.Equal(t, seenID, resp.Header.Get("X-Request-ID"))
}

func TestRequestLoggerCountsRequests(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), metrics))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NoError(t, err)
	}

	assert.Equal(t, int64(3), metrics.RequestCount("/ping", http.MethodGet, http.StatusOK))
}

func TestMetricsCounters(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	metrics.RecordRequest("/products", http.MethodGet, http.StatusOK, 5*time.Millisecond)
	metrics.RecordRequest("/products", http.MethodGet, http.StatusOK, 7*time.Millisecond)
	metrics.RecordError("/products", http.MethodPost, "FORBIDDEN")

	assert.Equal(t, int64(2), metrics.RequestCount("/products", http.MethodGet, http.StatusOK))
	assert.Zero(t, metrics.RequestCount("/products", http.MethodPost, http.StatusOK))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var metrics *Metrics
	metrics.RecordRequest("/x", http.MethodGet, http.StatusOK, 0)
	metrics.RecordError("/x", http.MethodGet, "INTERNAL_ERROR")
	assert.Zero(t, metrics.RequestCount("/x", http.MethodGet, http.StatusOK))
}
