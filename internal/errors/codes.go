package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type for generation and quiz operations.
type ErrorCode string

const (
	// ErrCodeValidation indicates the backend response failed shape validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeJSONParse indicates the backend response was not valid JSON.
	ErrCodeJSONParse ErrorCode = "JSON_PARSE_ERROR"
	// ErrCodeRateLimit indicates the backend rejected the call for quota reasons.
	ErrCodeRateLimit ErrorCode = "RATE_LIMIT_ERROR"
	// ErrCodeTimeout indicates the call timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT_ERROR"
	// ErrCodeNetwork indicates a transport-level failure.
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrCodeAuthentication indicates the backend rejected our credentials.
	ErrCodeAuthentication ErrorCode = "AUTHENTICATION_ERROR"
	// ErrCodeCircuitOpen indicates the circuit breaker short-circuited the call.
	ErrCodeCircuitOpen ErrorCode = "CIRCUIT_BREAKER_OPEN"
	// ErrCodeUnknown is the catch-all classification.
	ErrCodeUnknown ErrorCode = "UNKNOWN_ERROR"
	// ErrCodeNotFound indicates a referenced object does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// GenError represents a structured error carrying a classified code.
type GenError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *GenError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *GenError) GetCode() ErrorCode {
	return e.Code
}

// New creates a GenError with the given code.
func New(code ErrorCode, msg string) *GenError {
	return &GenError{Code: code, Message: msg}
}

// Wrap creates a GenError wrapping a cause.
func Wrap(code ErrorCode, msg string, cause error) *GenError {
	return &GenError{Code: code, Message: msg, Cause: cause}
}

// NotFound creates a not-found error.
func NotFound(msg string) *GenError {
	return &GenError{Code: ErrCodeNotFound, Message: msg}
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// CodeOf extracts the error code from err, or ErrCodeUnknown if it carries none.
func CodeOf(err error) ErrorCode {
	var genErr *GenError
	if errors.As(err, &genErr) {
		return genErr.Code
	}
	return ErrCodeUnknown
}
