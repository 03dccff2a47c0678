package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorType classifies a rejected field
type ValidationErrorType string

const (
	ErrorTypeRequired         ValidationErrorType = "required"
	ErrorTypeInvalidFormat    ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength    ValidationErrorType = "invalid_length"
	ErrorTypeInvalidCharacter ValidationErrorType = "invalid_character"
)

// FieldError is one rejected task field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

// ValidationError collects every rejected field of one task input
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{
		Errors: make([]FieldError, 0),
	}
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation error"
	}

	messages := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// AsValidationError extracts the ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// HasErrors reports whether any field was rejected
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Merge appends the field errors of err if it is a ValidationError.
func (ve *ValidationError) Merge(err error) {
	if other, ok := AsValidationError(err); ok {
		ve.Errors = append(ve.Errors, other.Errors...)
	}
}

func (ve *ValidationError) add(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
}

// AddRequiredError rejects a blank field
func (ve *ValidationError) AddRequiredError(field string) {
	ve.add(field, ErrorTypeRequired, fmt.Sprintf("%s is required", field), nil)
}

// AddTooLongError rejects a field longer than max characters
func (ve *ValidationError) AddTooLongError(field string, value interface{}, max int) {
	ve.add(field, ErrorTypeInvalidLength, fmt.Sprintf("%s must be at most %d characters long", field, max), value)
}

// AddInvalidCharacterError rejects a field holding control characters
func (ve *ValidationError) AddInvalidCharacterError(field string, value interface{}) {
	ve.add(field, ErrorTypeInvalidCharacter, fmt.Sprintf("%s contains invalid characters", field), value)
}

// AddInvalidDateError rejects a date that is not a real YYYY-MM-DD calendar day
func (ve *ValidationError) AddInvalidDateError(field string, value string, cause error) {
	ve.add(field, ErrorTypeInvalidFormat,
		fmt.Sprintf("due date must be a valid date in YYYY-MM-DD form: %v", cause), value)
}

// GetUserFriendlyMessage returns the message shown to the user: the single
// field message, or a bulleted list when several fields were rejected.
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}

	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Message)
	}
	return b.String()
}
