package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", NewValidationFailedError("bad"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("outer: %w", ErrValidation), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("who"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"not found", NewNotFoundError("gone"), http.StatusNotFound},
		{"duplicate", NewDuplicateError("twice"), http.StatusConflict},
		{"conflict", NewConflictError("state"), http.StatusConflict},
		{"internal", NewAppError(500, "db down", nil), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewAppError(500, "failed to save", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save: connection reset", err.Error())

	internal := NewAppError(500, "no cause", nil)
	assert.ErrorIs(t, internal, ErrInternal)
}
