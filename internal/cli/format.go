package cli

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"tasklist/internal/config"
	"tasklist/internal/domain"
)

// formatDue renders the due date with the configured layout and, for open
// tasks, a relative hint such as "tomorrow" or "3 days ago".
func formatDue(task domain.Task, display config.DisplayConfig, today domain.Date) string {
	if task.DueDate == nil {
		return "-"
	}
	text := task.DueDate.Format(display.DateFormat)
	if display.RelativeDue && !task.Completed {
		text += " (" + relativeDue(*task.DueDate, today) + ")"
	}
	return text
}

func relativeDue(due, today domain.Date) string {
	switch today.DaysUntil(due) {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	case -1:
		return "yesterday"
	}
	// Whole days in UTC so daylight saving changes never shorten a day
	return humanize.RelTime(utcMidnight(due), utcMidnight(today), "ago", "from now")
}

func utcMidnight(d domain.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// firstLine returns the first line of s, marking dropped lines with "...".
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[:i], "\r") + " ..."
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
