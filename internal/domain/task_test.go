package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	due := Date{Year: 2025, Month: time.January, Day: 10}
	task := NewTask("Buy milk", "2 liters", &due, false)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2 liters", task.Description)
	assert.Equal(t, &due, task.DueDate)
	assert.False(t, task.Completed)

	other := NewTask("Buy milk", "2 liters", &due, false)
	assert.NotEqual(t, task.ID, other.ID, "each task gets its own ID")
}

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{name: "title", task: Task{Title: "Valid Task"}, expected: true},
		{name: "empty title", task: Task{Title: ""}, expected: false},
		{name: "whitespace title", task: Task{Title: "   \t"}, expected: false},
		{name: "special characters", task: Task{Title: "Task-with_special@chars!"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "Write report", Task{Title: "Write report"}.String())
}

func TestTask_ShortID(t *testing.T) {
	assert.Equal(t, "abc", Task{ID: "abc"}.ShortID())
	assert.Equal(t, "12345678", Task{ID: "1234567890"}.ShortID())
}

func TestTask_StatusLabel(t *testing.T) {
	assert.Equal(t, "In progress", Task{}.StatusLabel())
	assert.Equal(t, "Completed", Task{Completed: true}.StatusLabel())
}

func TestTask_DueDateString(t *testing.T) {
	assert.Equal(t, "", Task{}.DueDateString())
	due := Date{Year: 2025, Month: time.March, Day: 5}
	assert.Equal(t, "2025-03-05", Task{DueDate: &due}.DueDateString())
}

func TestTask_IsOverdue(t *testing.T) {
	today := Date{Year: 2025, Month: time.June, Day: 15}
	yesterday := today.AddDays(-1)

	assert.True(t, Task{DueDate: &yesterday}.IsOverdue(today))
	assert.False(t, Task{DueDate: &yesterday, Completed: true}.IsOverdue(today))
	assert.False(t, Task{DueDate: &today}.IsOverdue(today))
	assert.False(t, Task{}.IsOverdue(today))
}

func TestTask_MatchesTerm(t *testing.T) {
	task := Task{Title: "Buy Milk", Description: "From the Corner shop"}

	tests := []struct {
		term     string
		expected bool
	}{
		{"", true},
		{"milk", true},
		{"MILK", true},
		{"corner", true},
		{"bread", false},
		{" milk", true},
		{"milk ", false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.expected, task.MatchesTerm(tt.term))
		})
	}
}

func TestTask_Clone(t *testing.T) {
	due := Date{Year: 2025, Month: time.May, Day: 1}
	original := Task{ID: "x", Title: "a", DueDate: &due}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.DueDate.Day = 2
	assert.Equal(t, 1, original.DueDate.Day)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "short", input: "hello", width: 50, expected: "hello"},
		{name: "exact", input: "hello", width: 5, expected: "hello"},
		{name: "cut", input: "hello world", width: 8, expected: "hello..."},
		{name: "runes", input: "ééééééééé", width: 6, expected: "ééé..."},
		{name: "tiny width", input: "hello", width: 2, expected: "he"},
		{name: "no limit", input: "hello", width: 0, expected: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.width))
		})
	}
}

func TestTruncate_DescriptionColumn(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	result := Truncate(long, 50)
	assert.Len(t, result, 50)
	assert.Equal(t, long[:47]+"...", result)
}
