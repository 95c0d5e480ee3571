package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartedu_backend/internals/helpers/logger"
	"smartedu_backend/internals/helpers/metrics"
)

func TestRequestContext_CarriesRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New(), RequestContext())
	app.Get("/", func(c *fiber.Ctx) error {
		rid, _ := c.UserContext().Value(logger.RequestIDKey).(string)
		return c.SendString(rid)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "rid-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "rid-123", string(body[:n]))
}

func TestMetricsMiddleware_LabelsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(MetricsMiddleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(fiber.MethodGet, "/items/:id", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/items/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestCallbackRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/cb", CallbackRateLimiter(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	var last int
	for i := 0; i < 31; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/cb", nil))
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, fiber.StatusTooManyRequests, last)
}
