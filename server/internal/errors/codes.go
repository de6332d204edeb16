package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a specific error type for API operations.
type ErrorCode string

const (
	// ErrCodeUnauthorized indicates authentication failure.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates the requested entity does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an unexpected server-side failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// ServiceError represents a structured error carried from the service layer
// to the HTTP layer.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error code to an HTTP status code.
func (e *ServiceError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Convenience constructors for common error types.

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeUnauthorized, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeInvalidArgument, Message: msg}
}

// InvalidArgumentf creates an invalid argument error with a formatted message.
func InvalidArgumentf(format string, args ...any) *ServiceError {
	return &ServiceError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error.
func NotFound(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeNotFound, Message: msg}
}

// Internal creates an internal error wrapping the cause.
func Internal(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *ServiceError {
	return &ServiceError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if serviceErr, ok := err.(*ServiceError); ok {
		return serviceErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a ServiceError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if serviceErr, ok := err.(*ServiceError); ok {
		return serviceErr.Code
	}
	return defaultCode
}
