package app_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/app"
)

func TestNewValidationErrorSuccess(t *testing.T) {
	tests := []struct {
		name          string
		field         string
		message       string
		expectedError string
	}{
		{
			name:          "reminder id validation error",
			field:         "id",
			message:       "invalid reminder ID",
			expectedError: "validation error: id - invalid reminder ID",
		},
		{
			name:          "weekly component validation error",
			field:         "reminder",
			message:       "weekly reminder requires at least one weekday",
			expectedError: "validation error: reminder - weekly reminder requires at least one weekday",
		},
		{
			name:          "user id validation error",
			field:         "user_id",
			message:       "invalid user ID",
			expectedError: "validation error: user_id - invalid user ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedError, err.Error())
			assert.Equal(t, tt.field, err.Field)
			assert.Equal(t, tt.message, err.Message)
			assert.ErrorIs(t, err, app.ErrValidation)
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "direct validation error",
			err:      app.NewValidationError("id", "bad"),
			expected: true,
		},
		{
			name:     "wrapped validation error",
			err:      fmt.Errorf("schedule failed: %w", app.NewValidationError("id", "bad")),
			expected: true,
		},
		{
			name:     "not found error",
			err:      app.ErrNotFound,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, app.IsValidationError(tt.err))
		})
	}
}
