package domain

import (
	"strings"

	"tasklist/internal/errors"
)

// StatusFilter restricts a task listing by completion state.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusIncomplete
	StatusCompleted
)

// String returns the canonical name used on the command line.
func (s StatusFilter) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Label returns the display name.
func (s StatusFilter) Label() string {
	switch s {
	case StatusIncomplete:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next cycles All -> Incomplete -> Completed -> All.
func (s StatusFilter) Next() StatusFilter {
	return (s + 1) % 3
}

// Accepts reports whether the task passes the filter.
func (s StatusFilter) Accepts(t Task) bool {
	switch s {
	case StatusIncomplete:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

// ParseStatusFilter parses a filter name; the empty string means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "incomplete", "pending", "open", "in-progress", "in_progress":
		return StatusIncomplete, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	default:
		return StatusAll, errors.NewInvalidInputError("status", s, "expected all, incomplete or completed")
	}
}
