package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tasklist/internal/config"
	"tasklist/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed rune count is within the specified range.
// A max of zero means no upper bound.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && (max <= 0 || length <= max)
}

// HasControlCharacters reports whether s contains control characters.
// Newlines and tabs are tolerated when multiline is set.
func (v *Validator) HasControlCharacters(s string, multiline bool) bool {
	for _, r := range s {
		if multiline && (r == '\n' || r == '\t' || r == '\r') {
			continue
		}
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// ParseDate parses a due date. Besides YYYY-MM-DD it accepts the
// shorthands "today" and "tomorrow", case-insensitively.
func (v *Validator) ParseDate(s string) (domain.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return domain.Today(), nil
	case "tomorrow":
		return domain.Today().AddDays(1), nil
	}
	return domain.ParseDate(strings.TrimSpace(s))
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getTitleMaxLength returns configured maximum title length or default
func (v *Validator) getTitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 200 // Default maximum
}

// getDescriptionMaxLength returns configured maximum description length or default
func (v *Validator) getDescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return 2000 // Default maximum
}
