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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrPermission     ErrorCode = "PERMISSION"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Install source and archive errors
	ErrSourceNotFound    ErrorCode = "SOURCE_NOT_FOUND"
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrExtractFailed     ErrorCode = "EXTRACT_FAILED"
	ErrInstallFailed     ErrorCode = "INSTALL_FAILED"

	// Package state errors
	ErrNotInstalled ErrorCode = "NOT_INSTALLED"

	// Database errors
	ErrDatabaseLoad ErrorCode = "DATABASE_LOAD"
	ErrDatabaseSave ErrorCode = "DATABASE_SAVE"

	// Warning codes. These never fail a command on their own; they are
	// attached to results and logged, and the command still exits zero.
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrProtectedPath   ErrorCode = "PROTECTED_PATH"
	ErrFileRemoval     ErrorCode = "FILE_REMOVAL"
	ErrDatabaseCorrupt ErrorCode = "DATABASE_CORRUPT"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// ScpkgError represents a structured error with code and details
type ScpkgError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ScpkgError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ScpkgError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ScpkgError) Is(target error) bool {
	var targetErr *ScpkgError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ScpkgError with the given code and message
func New(code ErrorCode, message string) *ScpkgError {
	return &ScpkgError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ScpkgError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ScpkgError {
	return &ScpkgError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ScpkgError
func Wrap(err error, code ErrorCode, message string) *ScpkgError {
	if err == nil {
		return nil
	}
	return &ScpkgError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ScpkgError {
	if err == nil {
		return nil
	}
	return &ScpkgError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ScpkgError) WithDetail(key string, value interface{}) *ScpkgError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ScpkgError) WithDetails(details map[string]interface{}) *ScpkgError {
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
	var scpkgErr *ScpkgError
	if errors.As(err, &scpkgErr) {
		return scpkgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ScpkgError
func GetErrorCode(err error) ErrorCode {
	var scpkgErr *ScpkgError
	if errors.As(err, &scpkgErr) {
		return scpkgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ScpkgError
func GetErrorDetails(err error) map[string]interface{} {
	var scpkgErr *ScpkgError
	if errors.As(err, &scpkgErr) {
		return scpkgErr.Details
	}
	return nil
}
