package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewIndexError reports a position outside the current task list.
// Positions are zero-based internally; the message shows the 1-based number users type.
func NewIndexError(index int, length int) *AppError {
	var message string
	if length == 0 {
		message = fmt.Sprintf("no task at position %d: the list is empty", index+1)
	} else {
		message = fmt.Sprintf("no task at position %d: valid positions are 1 to %d", index+1, length)
	}
	return &AppError{
		Type:    ErrorTypeIndex,
		Message: message,
		Code:    "INDEX_OUT_OF_RANGE",
		Context: map[string]interface{}{
			"index":  index,
			"length": length,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewFormatError reports a malformed persisted record field
func NewFormatError(field string, reason string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: fmt.Sprintf("malformed %s: %s", field, reason),
		Code:    "MALFORMED_RECORD",
		Cause:   cause,
		Context: map[string]interface{}{
			"field":  field,
			"reason": reason,
		},
	}
}

// NewLoadError reports a failure reading tasks from storage
func NewLoadError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeLoad,
		Message: fmt.Sprintf("could not load tasks from %s", path),
		Code:    "LOAD_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewSaveError reports a failure writing tasks to storage
func NewSaveError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeSave,
		Message: fmt.Sprintf("could not save tasks to %s", path),
		Code:    "SAVE_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether any AppError in the chain has the given type.
// Load and save errors wrap format and database errors, so the whole chain is walked.
func IsErrorType(err error, errorType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.IsType(errorType) {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			if appErr.Cause != nil {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		case ErrorTypeIndex, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeFormat, ErrorTypeLoad, ErrorTypeSave:
			if appErr.Cause != nil {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeIndex, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // These are user errors, not system errors
		case ErrorTypeFormat, ErrorTypeLoad, ErrorTypeSave, ErrorTypeDatabase, ErrorTypeTimeout:
			return true
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
