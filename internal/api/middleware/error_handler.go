package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/numinix/paypal-rest-api-sub010/internal/constants"
	"github.com/numinix/paypal-rest-api-sub010/internal/service"
	"github.com/numinix/paypal-rest-api-sub010/pkg/paypal"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"code":    constants.ErrCodeValidationFailed,
				"message": fiberErr.Message,
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    constants.ErrCodeInternalError,
			"message": constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	message := constants.GetErrorMessage(err.Code)

	// Gateway failures carry the processor's structured payload; show the
	// admin its first issue description instead of a generic message.
	var apiErr *paypal.APIError
	if errors.As(err.Cause, &apiErr) {
		message = apiErr.UserMessage()
	}

	return c.Status(constants.GetHTTPStatus(err.Code)).JSON(fiber.Map{
		"code":    err.Code,
		"message": message,
	})
}
