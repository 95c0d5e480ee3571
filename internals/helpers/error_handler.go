package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/logger"
)

// FromError renders any error returned by a service or handler into the
// standard error envelope.
func FromError(c *fiber.Ctx, err error) error {
	if ae, ok := apperror.As(err); ok {
		status := ae.StatusCode
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		if status >= fiber.StatusInternalServerError {
			logger.WithContext(c.UserContext()).WithError(err).Error("request failed")
		}
		var details interface{}
		if ae.Details != "" {
			details = ae.Details
		}
		return ErrorWithCode(c, status, ae.Code, ae.Message, details)
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ValidationError(c, ve)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}

	logger.WithContext(c.UserContext()).WithError(err).Error("unhandled error")
	return Error(c, fiber.StatusInternalServerError, "Internal server error")
}

// ErrorHandler plugs FromError into fiber.Config.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromError(c, err)
}
