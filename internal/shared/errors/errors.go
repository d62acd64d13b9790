// Package errors defines the error kinds surfaced to API callers.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every AppError wraps exactly one of these.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("resource conflict")
	ErrInternal     = errors.New("internal error")
	ErrRateLimited  = errors.New("rate limited")
)

// AppError carries a stable machine-readable code and a human message.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil && !isKind(e.Err) {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrorResponse represents the JSON error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToResponse converts an AppError to ErrorResponse.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    e.Code,
			Message: e.Message,
		},
	}
}

// NewAppError creates a new application error.
func NewAppError(code string, message string, statusCode int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// NewNotFound declares a not-found error with a specific code.
func NewNotFound(code, message string) *AppError {
	return NewAppError(code, message, http.StatusNotFound, ErrNotFound)
}

// NewConflict declares a conflict error with a specific code.
func NewConflict(code, message string) *AppError {
	return NewAppError(code, message, http.StatusConflict, ErrConflict)
}

// NewForbidden declares a forbidden error with a specific code.
func NewForbidden(code, message string) *AppError {
	return NewAppError(code, message, http.StatusForbidden, ErrForbidden)
}

// NewBadRequest declares a bad request error with a specific code.
func NewBadRequest(code, message string) *AppError {
	return NewAppError(code, message, http.StatusBadRequest, ErrBadRequest)
}

// NotFound creates a generic not found error.
func NotFound(resource string) *AppError {
	return NewNotFound("NOT_FOUND", fmt.Sprintf("%s not found", resource))
}

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError("UNAUTHORIZED", message, http.StatusUnauthorized, ErrUnauthorized)
}

// Forbidden creates a generic forbidden error.
func Forbidden(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return NewForbidden("FORBIDDEN", message)
}

// BadRequest creates a generic bad request error.
func BadRequest(message string) *AppError {
	return NewBadRequest("BAD_REQUEST", message)
}

// Conflict creates a generic conflict error.
func Conflict(message string) *AppError {
	return NewConflict("CONFLICT", message)
}

// Internal creates an internal error.
func Internal(message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return NewAppError("INTERNAL_ERROR", message, http.StatusInternalServerError, err)
}

// RateLimited creates a rate limited error.
func RateLimited(message string) *AppError {
	if message == "" {
		message = "too many requests"
	}
	return NewAppError("RATE_LIMITED", message, http.StatusTooManyRequests, ErrRateLimited)
}

// From converts any error into an AppError. Unknown errors become INTERNAL_ERROR
// and keep the original error wrapped for logging.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}

func isKind(err error) bool {
	switch err {
	case ErrNotFound, ErrUnauthorized, ErrForbidden, ErrBadRequest, ErrConflict, ErrInternal, ErrRateLimited:
		return true
	default:
		return false
	}
}
