package validation

import (
	"tasklist/internal/config"
	"tasklist/internal/domain"
)

// Field names used in validation errors
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "due_date"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError(FieldTitle)
		return validationError
	}

	maxLen := tv.validator.getTitleMaxLength()
	if !tv.validator.IsValidStringLength(trimmed, 1, maxLen) {
		validationError.AddTooLongError(FieldTitle, trimmed, maxLen)
	}

	if tv.validator.HasControlCharacters(trimmed, false) {
		validationError.AddInvalidCharacterError(FieldTitle, trimmed)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateDescription validates a task description. Empty descriptions are allowed.
func (tv *TaskValidator) ValidateDescription(description string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(description)

	maxLen := tv.validator.getDescriptionMaxLength()
	if maxLen > 0 && !tv.validator.IsValidStringLength(trimmed, 0, maxLen) {
		validationError.AddTooLongError(FieldDescription, trimmed, maxLen)
	}

	if tv.validator.HasControlCharacters(trimmed, true) {
		validationError.AddInvalidCharacterError(FieldDescription, trimmed)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ParseDueDate parses an optional due date. Blank input means no due date.
func (tv *TaskValidator) ParseDueDate(value string) (*domain.Date, error) {
	if !tv.validator.IsNonEmptyString(value) {
		return nil, nil
	}

	date, err := tv.validator.ParseDate(value)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidDateError(FieldDueDate, value, err)
		return nil, validationError
	}
	return &date, nil
}

// ValidateTaskInput validates raw user input and returns the task fields in clean form.
// All field errors are collected into a single ValidationError.
func (tv *TaskValidator) ValidateTaskInput(title, description, dueDate string) (domain.Task, error) {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateTitle(title))
	validationError.Merge(tv.ValidateDescription(description))

	due, err := tv.ParseDueDate(dueDate)
	validationError.Merge(err)

	if validationError.HasErrors() {
		return domain.Task{}, validationError
	}

	return domain.Task{
		Title:       tv.validator.TrimAndValidateString(title),
		Description: tv.validator.TrimAndValidateString(description),
		DueDate:     due,
	}, nil
}

// ValidateTask checks a stored task. Only the title is required; length limits
// apply to input so that a stricter configuration still loads existing files.
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	if task.IsValid() {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddRequiredError(FieldTitle)
	return validationError
}
