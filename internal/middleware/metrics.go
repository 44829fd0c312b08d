package middleware

import (
	"time"

	"bloombuilder/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records every request on m. Errors are resolved to the status the
// error handler will produce, since it runs after this middleware returns.
func Metrics(m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = Resolve(err)
		}
		m.Observe(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
