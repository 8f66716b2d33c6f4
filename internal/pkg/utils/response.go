package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/landmark-service/internal/pkg/errors"
	"github.com/landmark-service/internal/pkg/validator"
)

// SendError writes an AppError with its HTTP status. Validation errors
// coming straight from the validator are converted to a 400 with
// per-field details; anything unrecognized becomes an opaque 500.
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(appErr)
	}

	if violations := validator.Violations(err); violations != nil {
		appErr := errors.ErrInvalidRequest.WithDetails(violations)
		return c.Status(appErr.StatusCode).JSON(appErr)
	}

	return c.Status(errors.ErrInternalServer.StatusCode).JSON(errors.ErrInternalServer)
}
