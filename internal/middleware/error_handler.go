package middleware

import (
	"errors"

	"bloombuilder/internal/apperrors"
	"bloombuilder/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler is the single place where errors returned by handlers become
// HTTP responses. Every failure is rendered as {"error": <message>}; server
// errors are logged with their cause and replaced by a generic message.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := Resolve(err)
		if status >= fiber.StatusInternalServerError {
			log.Error(c.UserContext(), "request failed: "+c.Method()+" "+c.OriginalURL(), err)
		}
		return c.Status(status).JSON(fiber.Map{
			"error": message,
		})
	}
}

// Resolve maps an error to its status code and caller-facing message.
func Resolve(err error) (int, string) {
	if typed := apperrors.As(err); typed != nil {
		return apperrors.MetadataFor(typed.Kind()).HTTPStatus, typed.PublicMessage()
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, internalErrorMessage
}
