package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactories_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"validation", NewValidation("bad input"), CodeValidation, http.StatusBadRequest},
		{"not found", NewNotFound("sale", "abc"), CodeNotFound, http.StatusNotFound},
		{"conflict", NewConflict("already paid"), CodeConflict, http.StatusConflict},
		{"duplicate", NewDuplicate("item", "name", "Coke"), CodeDuplicate, http.StatusConflict},
		{"unauthorized", NewUnauthorized("bad token"), CodeUnauthorized, http.StatusUnauthorized},
		{"internal", NewInternal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.Equal(t, tt.wantStatus, GetHTTPStatus(tt.err))
		})
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := NewNotFound("item", "Coke")
	wrapped := fmt.Errorf("load line: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestAsAppError_PlainError(t *testing.T) {
	_, ok := AsAppError(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestWithDetail_Chaining(t *testing.T) {
	err := NewValidation("quantity must be positive").
		WithDetail("field", "items").
		WithDetail("lineNo", 2)

	require.NotNil(t, err.Details)
	assert.Equal(t, "items", err.Details["field"])
	assert.Equal(t, 2, err.Details["lineNo"])
}

func TestWithCause_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternal(cause)

	assert.ErrorIs(t, err, cause)
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(NewConflict("sale is closed")))
	assert.True(t, IsConflict(NewDuplicate("sale", "invoice_number", "INV-0001")))
	assert.False(t, IsConflict(NewValidation("nope")))
}
