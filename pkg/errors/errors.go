package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates the operation clashes with work already in flight
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeEmptyInput indicates a blank message was submitted
	ErrorTypeEmptyInput ErrorType = "EMPTY_INPUT"

	// ErrorTypeNetwork indicates the request never reached the backend or no response arrived
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeProtocol indicates the backend answered with a non-2xx status or an unreadable body
	ErrorTypeProtocol ErrorType = "PROTOCOL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
	}
}

// NewEmptyInputError creates a new empty input error
func NewEmptyInputError() *AppError {
	return &AppError{
		Type:    ErrorTypeEmptyInput,
		Message: "message is empty",
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Message: message,
		Err:     err,
	}
}

// NewProtocolError creates a new protocol error
func NewProtocolError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeProtocol,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err wraps an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// UserMessage returns the single line shown to the operator for err.
// The type prefix used by Error() is left out.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	if appErr.Err != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}
	if appErr.Message == "" {
		return "Request failed"
	}
	return appErr.Message
}
