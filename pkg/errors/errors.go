// Package errors provides structured error types for physiq-server.
//
// All errors crossing a component boundary should use these types to enable
// consistent error handling, logging and retry decisions.
package errors

import (
	"fmt"
)

// ErrorCode represents a unique error identifier for categorization.
type ErrorCode string

// Common error codes used throughout physiq-server.
const (
	// User errors
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeUserUnauthorized ErrorCode = "USER_UNAUTHORIZED"

	// Measurement errors
	CodeMeasurementNotFound      ErrorCode = "MEASUREMENT_NOT_FOUND"
	CodeMeasurementInvalidFormat ErrorCode = "MEASUREMENT_INVALID_FORMAT"
	CodeMeasurementIncomplete    ErrorCode = "MEASUREMENT_INCOMPLETE"

	// Analysis errors
	CodeAnalysisNotFound ErrorCode = "ANALYSIS_NOT_FOUND"
	CodeAnalysisFailed   ErrorCode = "ANALYSIS_FAILED"

	// Infrastructure errors
	CodeStorageError ErrorCode = "STORAGE_ERROR"
	CodePubSubError  ErrorCode = "PUBSUB_ERROR"
	CodeSecretError  ErrorCode = "SECRET_ERROR"

	// General errors
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// Error is the base error type for all physiq-server errors. It provides
// structured error information including error codes, retry semantics and
// contextual metadata.
type Error struct {
	Code      ErrorCode         // Unique error code for categorization
	Message   string            // Human-readable error message
	Cause     error             // Underlying error (if any)
	Retryable bool              // Whether the operation can be retried
	Metadata  map[string]string // Additional context
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Code:      e.Code,
		Message:   e.Message,
		Cause:     cause,
		Retryable: e.Retryable,
		Metadata:  e.Metadata,
	}
}

// WithMetadata adds contextual metadata.
func (e *Error) WithMetadata(key, value string) *Error {
	meta := make(map[string]string)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	return &Error{
		Code:      e.Code,
		Message:   e.Message,
		Cause:     e.Cause,
		Retryable: e.Retryable,
		Metadata:  meta,
	}
}

// Pre-defined sentinel errors for common cases.
// Use these with errors.Is() or wrap them with .WithCause().
var (
	ErrUserNotFound     = &Error{Code: CodeUserNotFound, Message: "user not found", Retryable: false}
	ErrUserUnauthorized = &Error{Code: CodeUserUnauthorized, Message: "unauthorized", Retryable: false}

	ErrMeasurementNotFound      = &Error{Code: CodeMeasurementNotFound, Message: "measurement not found", Retryable: false}
	ErrMeasurementInvalidFormat = &Error{Code: CodeMeasurementInvalidFormat, Message: "invalid measurement format", Retryable: false}
	ErrMeasurementIncomplete    = &Error{Code: CodeMeasurementIncomplete, Message: "measurement data incomplete", Retryable: false}

	ErrAnalysisNotFound = &Error{Code: CodeAnalysisNotFound, Message: "analysis not found", Retryable: false}
	ErrAnalysisFailed   = &Error{Code: CodeAnalysisFailed, Message: "analysis failed", Retryable: true}

	ErrStorageError = &Error{Code: CodeStorageError, Message: "storage error", Retryable: true}
	ErrPubSubError  = &Error{Code: CodePubSubError, Message: "pubsub error", Retryable: true}
	ErrSecretError  = &Error{Code: CodeSecretError, Message: "secret access error", Retryable: true}

	ErrValidation = &Error{Code: CodeValidationError, Message: "validation error", Retryable: false}
	ErrInternal   = &Error{Code: CodeInternalError, Message: "internal error", Retryable: false}
)

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// Wrap wraps an error with a structured Error.
func Wrap(cause error, code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: false,
	}
}

// WrapRetryable wraps an error with a retryable Error.
func WrapRetryable(cause error, code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: true,
	}
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if perr, ok := err.(*Error); ok {
		return perr.Retryable
	}
	return false
}

// GetCode extracts the error code from an error, if available.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if perr, ok := err.(*Error); ok {
		return perr.Code
	}
	return CodeInternalError
}
