// Package apierror provides the error taxonomy shared by services and the
// HTTP layer. All errors returned to clients go through this package so that
// responses stay consistent and internals (stack traces, SQL errors) never
// leak.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the canonical service-level error. Status is the HTTP status the
// handler should respond with; Message is safe to show to clients.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"errors"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// Validation covers malformed or missing input (400).
func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// NotFound covers references to absent entities (404).
func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

// Conflict covers uniqueness violations such as a duplicate purchase code per
// supplier or a duplicate master-data name (400, matching the upstream API).
func Conflict(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// InsufficientStock signals that FEFO allocation could not satisfy demand.
func InsufficientStock(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// InsufficientPayment signals payment below the computed sale total.
func InsufficientPayment(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// Unauthorized covers failed authentication (401).
func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, format, args...)
}

// Internal marks consistency violations that indicate a bug (e.g. a lot
// depletion exceeding the remaining quantity). Handlers respond 500 with a
// generic message; the real cause must be logged at the call site.
func Internal(format string, args ...any) *Error {
	return New(http.StatusInternalServerError, format, args...)
}

// StatusOf extracts the HTTP status for err, defaulting to 500 for anything
// that is not an *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-safe message for err. Non-taxonomy errors and
// internal consistency errors are masked.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != http.StatusInternalServerError {
		return apiErr.Message
	}
	return "internal server error"
}

// Response is the JSON envelope for error replies: {"errors": "..."}.
type Response struct {
	Errors string `json:"errors"`
}

// ValidationFields wraps per-field validation errors.
type ValidationFields struct {
	Errors string            `json:"errors"`
	Fields map[string]string `json:"fields"`
}

func NewValidationFields(fields map[string]string) *ValidationFields {
	return &ValidationFields{Errors: "validation error", Fields: fields}
}
