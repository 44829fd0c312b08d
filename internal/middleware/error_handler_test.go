package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bloombuilder/internal/apperrors"
	"bloombuilder/internal/middleware"
	"bloombuilder/pkg/logger"
	"bloombuilder/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(logOutput io.Writer) *fiber.App {
	log := logger.New(logger.Options{ServiceName: "test", Output: logOutput})
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	app.Use(requestid.New())
	app.Use(middleware.RequestContext(log, "requestid"))

	app.Get("/validation", func(c *fiber.Ctx) error {
		return apperrors.Validation("price must be greater than or equal to 0")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fmt.Errorf("lookup: %w", apperrors.NotFound("abc"))
	})
	app.Get("/store", func(c *fiber.Ctx) error {
		return apperrors.Store(errors.New("dial tcp: connection refused"), "failed to list flowers")
	})
	app.Get("/panic-free", func(c *fiber.Ctx) error {
		return errors.New("unexpected nil map")
	})
	return app
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["error"]
}

func TestErrorHandlerMapsKinds(t *testing.T) {
	var logs bytes.Buffer
	app := newTestApp(&logs)

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/validation", http.StatusBadRequest, "price must be greater than or equal to 0"},
		{"/missing", http.StatusNotFound, "flower not found"},
		{"/store", http.StatusInternalServerError, "Internal server error"},
		{"/panic-free", http.StatusInternalServerError, "Internal server error"},
		{"/no-such-route", http.StatusNotFound, "Cannot GET /no-such-route"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, decodeError(t, resp))
		})
	}

	// Server errors are logged with their cause and the request id.
	assert.Contains(t, logs.String(), "connection refused")
	assert.Contains(t, logs.String(), "request_id")
}

func TestMetricsMiddlewareUsesResolvedStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(reg)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger.Nop())})
	app.Use(middleware.Metrics(httpMetrics))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NotFound("abc")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	count, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
