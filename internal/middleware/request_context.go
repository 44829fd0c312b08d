package middleware

import (
	"fmt"

	"bloombuilder/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestContext attaches a request-scoped logger to the user context. It
// expects the requestid middleware to have run first.
func RequestContext(log *logger.Logger, requestIDKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Locals(requestIDKey); id != nil {
			c.SetUserContext(log.WithRequestID(c.UserContext(), fmt.Sprint(id)))
		}
		return c.Next()
	}
}
