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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Build errors
	ErrUnknownVariant     ErrorCode = "UNKNOWN_VARIANT"
	ErrMissingEnvironment ErrorCode = "MISSING_ENVIRONMENT"
	ErrCommandFailed      ErrorCode = "COMMAND_FAILED"
	ErrTargetNotFound     ErrorCode = "TARGET_NOT_FOUND"
	ErrTargetInvalid      ErrorCode = "TARGET_INVALID"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileCreate ErrorCode = "FILE_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// ChipbuildError represents a structured error with code and details
type ChipbuildError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ChipbuildError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ChipbuildError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ChipbuildError) Is(target error) bool {
	var targetErr *ChipbuildError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ChipbuildError with the given code and message
func New(code ErrorCode, message string) *ChipbuildError {
	return &ChipbuildError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ChipbuildError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ChipbuildError {
	return &ChipbuildError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ChipbuildError
func Wrap(err error, code ErrorCode, message string) *ChipbuildError {
	if err == nil {
		return nil
	}
	return &ChipbuildError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ChipbuildError {
	if err == nil {
		return nil
	}
	return &ChipbuildError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ChipbuildError) WithDetail(key string, value interface{}) *ChipbuildError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ChipbuildError) WithDetails(details map[string]interface{}) *ChipbuildError {
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
	var cbErr *ChipbuildError
	if errors.As(err, &cbErr) {
		return cbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ChipbuildError
func GetErrorCode(err error) ErrorCode {
	var cbErr *ChipbuildError
	if errors.As(err, &cbErr) {
		return cbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ChipbuildError
func GetErrorDetails(err error) map[string]interface{} {
	var cbErr *ChipbuildError
	if errors.As(err, &cbErr) {
		return cbErr.Details
	}
	return nil
}
