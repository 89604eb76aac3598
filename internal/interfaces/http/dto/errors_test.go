package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrency conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"duplicate request", ErrCodeDuplicateRequest, http.StatusConflict},
		{"insufficient stock", ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{"invalid state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"invalid credentials", ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{"token expired", ErrCodeTokenExpired, http.StatusUnauthorized},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"unknown code falls back to 500", "ERR_SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeAlreadyExists, NormalizeErrorCode("DUPLICATE_STOCK_RECORD"))
	assert.Equal(t, ErrCodeInsufficientStock, NormalizeErrorCode("INSUFFICIENT_STOCK"))
	assert.Equal(t, ErrCodeInvalidCredentials, NormalizeErrorCode("INVALID_CREDENTIALS"))
	assert.Equal(t, ErrCodeConcurrencyConflict, NormalizeErrorCode("CONCURRENT_MODIFICATION"))

	// Unmapped INVALID_* codes degrade to a generic input error
	assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_SOMETHING_ELSE"))

	// Unknown codes pass through untouched
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "record not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{{Field: "email", Message: "Invalid email format"}}
	resp := NewValidationErrorResponse("Request validation failed", "req-9", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
}
