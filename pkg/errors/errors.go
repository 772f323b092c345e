package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation         ErrorType = "VALIDATION"
	ErrorTypeInvalidArgument    ErrorType = "INVALID_ARGUMENT"
	ErrorTypeMalformedInput     ErrorType = "MALFORMED_INPUT"
	ErrorTypeIdentityResolution ErrorType = "IDENTITY_RESOLUTION"
	ErrorTypeNotFound           ErrorType = "NOT_FOUND"

	// Infrastructure errors
	ErrorTypeRequestFailed ErrorType = "REQUEST_FAILED"
	ErrorTypeNetwork       ErrorType = "NETWORK"
	ErrorTypeInternal      ErrorType = "INTERNAL"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`

	// Upstream response data, set for REQUEST_FAILED errors only.
	UpstreamStatus int    `json:"-"`
	UpstreamBody   string `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Constructor functions for common error types

// NewRequestFailedError creates an error for a non-2xx upstream response.
// The upstream status and raw body text are preserved so callers can
// surface them verbatim.
func NewRequestFailedError(operation string, status int, body string) *AppError {
	return &AppError{
		Type:           ErrorTypeRequestFailed,
		Message:        fmt.Sprintf("upstream request '%s' failed with status %d", operation, status),
		HTTPStatus:     status,
		UpstreamStatus: status,
		UpstreamBody:   body,
	}
}

// NewInvalidArgumentError creates an error for a missing or invalid
// argument; the network call must not have been attempted
func NewInvalidArgumentError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidArgument,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewMalformedInputError creates a non-fatal parse error for a form field
func NewMalformedInputError(field string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedInput,
		Message:    fmt.Sprintf("value for field '%s' could not be parsed", field),
		Cause:      err,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewIdentityResolutionError creates an error for a record whose primary
// key field could not be determined
func NewIdentityResolutionError(entity string) *AppError {
	return &AppError{
		Type:       ErrorTypeIdentityResolution,
		Message:    fmt.Sprintf("no identifier field could be resolved for entity '%s'", entity),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewNetworkError creates an error for a transport-level failure
func NewNetworkError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsRequestFailed checks if an error is an upstream request failure
func IsRequestFailed(err error) bool {
	return IsType(err, ErrorTypeRequestFailed)
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return IsType(err, ErrorTypeInvalidArgument)
}

// IsIdentityResolution checks if an error is an identity resolution failure
func IsIdentityResolution(err error) bool {
	return IsType(err, ErrorTypeIdentityResolution)
}
