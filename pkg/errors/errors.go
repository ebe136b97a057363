package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Manifest errors. Both abort the run before any mutation.
	ErrManifestUnreadable ErrorCode = "MANIFEST_UNREADABLE"
	ErrManifestInvalid    ErrorCode = "MANIFEST_INVALID"

	// Desired state errors
	ErrUnknownPackage      ErrorCode = "UNKNOWN_PACKAGE"
	ErrConflictingTarget   ErrorCode = "CONFLICTING_TARGET"
	ErrHomeDirUnresolvable ErrorCode = "HOME_DIR_UNRESOLVABLE"

	// State store errors
	ErrStateCorrupt ErrorCode = "STATE_CORRUPT"

	// Apply errors
	ErrIoFailure  ErrorCode = "IO_FAILURE"
	ErrHookFailed ErrorCode = "HOOK_FAILED"
)

// AkabeiError represents a structured error with code and details
type AkabeiError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AkabeiError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AkabeiError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AkabeiError) Is(target error) bool {
	var targetErr *AkabeiError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AkabeiError with the given code and message
func New(code ErrorCode, message string) *AkabeiError {
	return &AkabeiError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AkabeiError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AkabeiError {
	return &AkabeiError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AkabeiError.
// A nil err yields a nil *AkabeiError.
func Wrap(err error, code ErrorCode, message string) *AkabeiError {
	if err == nil {
		return nil
	}
	return &AkabeiError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AkabeiError {
	if err == nil {
		return nil
	}
	return &AkabeiError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AkabeiError) WithDetail(key string, value interface{}) *AkabeiError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *AkabeiError) WithDetails(details map[string]interface{}) *AkabeiError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var akabeiErr *AkabeiError
	if errors.As(err, &akabeiErr) {
		return akabeiErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AkabeiError
func GetErrorCode(err error) ErrorCode {
	var akabeiErr *AkabeiError
	if errors.As(err, &akabeiErr) {
		return akabeiErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an AkabeiError
func GetErrorDetails(err error) map[string]interface{} {
	var akabeiErr *AkabeiError
	if errors.As(err, &akabeiErr) {
		return akabeiErr.Details
	}
	return nil
}
