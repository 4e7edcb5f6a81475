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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Folder errors
	ErrRenameFailed   ErrorCode = "RENAME_FAILED"
	ErrNameCollision  ErrorCode = "NAME_COLLISION"
	ErrFolderNotFound ErrorCode = "FOLDER_NOT_FOUND"

	// State file errors
	ErrStateWrite   ErrorCode = "STATE_WRITE"
	ErrStateRead    ErrorCode = "STATE_READ"
	ErrStateCorrupt ErrorCode = "STATE_CORRUPT"

	// Run control
	ErrAborted     ErrorCode = "ABORTED"
	ErrInterrupted ErrorCode = "INTERRUPTED"
	ErrPrompt      ErrorCode = "PROMPT"
)

// ModbisectError represents a structured error with code and details
type ModbisectError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModbisectError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModbisectError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModbisectError) Is(target error) bool {
	var targetErr *ModbisectError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModbisectError with the given code and message
func New(code ErrorCode, message string) *ModbisectError {
	return &ModbisectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModbisectError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModbisectError {
	return &ModbisectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModbisectError
func Wrap(err error, code ErrorCode, message string) *ModbisectError {
	if err == nil {
		return nil
	}
	return &ModbisectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModbisectError {
	if err == nil {
		return nil
	}
	return &ModbisectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModbisectError) WithDetail(key string, value interface{}) *ModbisectError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mbErr *ModbisectError
	if errors.As(err, &mbErr) {
		return mbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModbisectError
func GetErrorCode(err error) ErrorCode {
	var mbErr *ModbisectError
	if errors.As(err, &mbErr) {
		return mbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ModbisectError
func GetErrorDetails(err error) map[string]interface{} {
	var mbErr *ModbisectError
	if errors.As(err, &mbErr) {
		return mbErr.Details
	}
	return nil
}
