package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorUnwraps(t *testing.T) {
	err := NotFound("event", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "event 7 not found", err.Error())

	// wrapping elsewhere keeps the kind reachable
	wrapped := fmt.Errorf("get event: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "event 7 not found", appErr.Message)
}

func TestValidationFields(t *testing.T) {
	err := Validation(
		FieldError{Field: "email", Message: "required"},
		FieldError{Field: "password", Message: "required"},
	)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, err.Fields, 2)
}
