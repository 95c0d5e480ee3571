package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Pagination(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "pagination failed")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	err := fmt.Errorf("resolve: %w", NotFound("payment not found"))

	ae, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, ae.Code)
	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeConflict))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("x"), fiber.StatusNotFound},
		{"conflict", Conflict("x"), fiber.StatusConflict},
		{"gateway", GatewayInit("x", nil), fiber.StatusBadGateway},
		{"invalid transition", InvalidTransition("x"), fiber.StatusUnprocessableEntity},
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "tea"), fiber.StatusTeapot},
		{"plain", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestWithDetails_DoesNotMutateOriginal(t *testing.T) {
	base := Validation("bad input")
	withDetails := base.WithDetails("amount must be positive")

	assert.Empty(t, base.Details)
	assert.Equal(t, "amount must be positive", withDetails.Details)
}
