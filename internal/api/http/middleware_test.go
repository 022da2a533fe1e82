package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nueltech/catalog-service/internal/observability"
)

func newMiddlewareApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	return app
}

func TestErrorMiddlewareConvertsPanicsTo500(t *testing.T) {
	t.Parallel()

	app := newMiddlewareApp()
	app.Get("/boom", func(_ *fiber.Ctx) error {
		panic("unexpected state")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var envelope errorEnvelope
	decodeBody(t, resp, &envelope)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
	assert.Equal(t, "internal server error", envelope.Error.Message)
}

func TestErrorMiddlewareNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	app := newMiddlewareApp()
	app.Get("/fail", func(_ *fiber.Ctx) error {
		return errors.New("pq: connection refused on 10.0.0.3")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var envelope errorEnvelope
	decodeBody(t, resp, &envelope)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
	assert.NotContains(t, envelope.Error.Message, "connection refused")
}
