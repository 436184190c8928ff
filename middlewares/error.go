package middlewares

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/nguyentoan1998/stockflowapp-sub002/document"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
// Validation failures and status-machine refusals surface with their detail;
// everything else collapses to a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Struct validation errors (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 3) Business validation (422), checked before any database work.
	var verr *document.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": verr.Error(),
		})
	}

	// 4) Status-machine refusals (409): the action is not legal for the
	// document's current status.
	var perr *document.PreconditionError
	if errors.As(err, &perr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": perr.Error(),
			"status":  string(perr.Status),
		})
	}

	// 5) Unknown errors (500)
	log.Error().Err(err).Str("path", c.Path()).Msg("internal error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
