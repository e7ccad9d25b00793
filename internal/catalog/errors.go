package catalog

import (
	"errors"
	"net/http"
)

// Domain errors for catalog operations.
var (
	ErrNotFound      = errors.New("catalog entry not found")
	ErrFileTooLarge  = errors.New("file exceeds maximum upload size")
	ErrInvalidUpload = errors.New("invalid upload")
)

// ValidationError wraps a schema rejection so callers can map it to a
// client-error response while preserving the raw rejection message.
type ValidationError struct {
	err error
}

func (e *ValidationError) Error() string {
	return e.err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidUpload) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
