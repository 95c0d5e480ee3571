// Package apperror holds the error taxonomy shared by services and handlers.
package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is a domain error that knows how it should surface over HTTP.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Details    string `json:"details,omitempty"`
	Cause      error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithDetails returns a copy carrying extra detail text.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

const (
	CodeNotFound          = "NOT_FOUND"
	CodeGatewayInit       = "GATEWAY_INIT_FAILED"
	CodeValidation        = "VALIDATION_ERROR"
	CodeStore             = "STORE_FAILURE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeConflict          = "CONFLICT"
	CodePagination        = "PAGINATION_FAILED"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternal          = "INTERNAL_ERROR"
)

func New(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: status}
}

func Wrap(code, message string, status int, cause error) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: status, Cause: cause}
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, fiber.StatusNotFound)
}

func GatewayInit(message string, cause error) *AppError {
	return Wrap(CodeGatewayInit, message, fiber.StatusBadGateway, cause)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message, fiber.StatusBadRequest)
}

// Store wraps a persistence failure, keeping the driver error as cause.
func Store(message string, cause error) *AppError {
	return Wrap(CodeStore, message, fiber.StatusInternalServerError, cause)
}

func InvalidTransition(message string) *AppError {
	return New(CodeInvalidTransition, message, fiber.StatusUnprocessableEntity)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, fiber.StatusConflict)
}

func Pagination(cause error) *AppError {
	return Wrap(CodePagination, "pagination failed", fiber.StatusInternalServerError, cause)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, fiber.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, fiber.StatusForbidden)
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Is reports whether the outermost AppError in err's chain carries code.
func Is(err error, code string) bool {
	ae, ok := As(err)
	return ok && ae.Code == code
}

// StatusCode maps any error onto an HTTP status.
func StatusCode(err error) int {
	if ae, ok := As(err); ok && ae.StatusCode != 0 {
		return ae.StatusCode
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
