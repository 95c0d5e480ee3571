package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/helpers/metrics"
)

// MetricsMiddleware mencatat jumlah & durasi request per route (bukan per URL,
// supaya label tidak meledak oleh path param).
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}
