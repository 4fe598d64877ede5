package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("message without cause", func(t *testing.T) {
		err := NewAppError(ErrTypeValidation, "bad input", nil)
		assert.Equal(t, "[VALIDATION] bad input", err.Error())
	})

	t.Run("message with cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewAppError(ErrTypeStorage, "write failed", cause)
		assert.Equal(t, "[STORAGE] write failed: boom", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("context accumulates", func(t *testing.T) {
		err := NewAppError(ErrTypeParsing, "oops", nil).
			WithContext("row", 7).
			WithContext("source", "hourly")
		assert.Equal(t, 7, err.Context["row"])
		assert.Equal(t, "hourly", err.Context["source"])
	})
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		errType  ErrorType
		contains string
	}{
		{"empty input", NewEmptyInputError("hourly"), ErrTypeEmptyInput, "hourly table is empty"},
		{"malformed row", NewMalformedRowError("daily", 12, errors.New("bad cell")), ErrTypeParsing, "malformed row 12 in daily table"},
		{"validation", NewValidationError("threshold must be positive"), ErrTypeValidation, "threshold"},
		{"storage", NewStorageError("create workbook", errors.New("denied")), ErrTypeStorage, "create workbook"},
		{"config", NewConfigError("load config", errors.New("no file")), ErrTypeConfig, "load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.errType, tt.err.Type)
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.True(t, IsType(tt.err, tt.errType))
		})
	}
}

func TestIsType(t *testing.T) {
	inner := NewEmptyInputError("hourly")
	wrapped := fmt.Errorf("run station: %w", inner)

	assert.True(t, IsType(wrapped, ErrTypeEmptyInput))
	assert.False(t, IsType(wrapped, ErrTypeStorage))
	assert.False(t, IsType(errors.New("plain"), ErrTypeEmptyInput))
}
