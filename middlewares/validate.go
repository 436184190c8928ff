package middlewares

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// BindAndValidate parses the JSON body into dst and runs its struct tag
// validation. Parse failures map to 400; tag failures surface as
// validator.ValidationErrors for the central error handler to shape.
func BindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return validate.Struct(dst)
}

// ValidateStruct runs the shared validator against any tagged struct.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}
