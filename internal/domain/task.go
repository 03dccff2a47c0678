package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ShortIDLength is the number of ID characters shown in listings.
const ShortIDLength = 8

// Task represents a task in the domain model.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     *Date
	Completed   bool
}

// NewID returns a fresh opaque task identifier.
func NewID() string {
	return uuid.NewString()
}

// NewTask creates a new Task with a fresh ID.
// No validation is performed; callers reject empty titles first.
func NewTask(title, description string, dueDate *Date, completed bool) Task {
	return Task{
		ID:          NewID(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Completed:   completed,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != ""
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// ShortID returns the leading characters of the ID.
func (t Task) ShortID() string {
	if len(t.ID) <= ShortIDLength {
		return t.ID
	}
	return t.ID[:ShortIDLength]
}

// StatusLabel returns the human readable completion state.
func (t Task) StatusLabel() string {
	if t.Completed {
		return "Completed"
	}
	return "In progress"
}

// DueDateString returns the due date as YYYY-MM-DD, or "" when unset.
func (t Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.String()
}

// IsOverdue reports whether an incomplete task is due before today.
func (t Task) IsOverdue(today Date) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(today)
}

// MatchesTerm reports whether term occurs in the title or description, ignoring case.
// An empty term matches every task.
func (t Task) MatchesTerm(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// Truncate shortens s to at most width runes, ending with "..." when cut.
func Truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}
