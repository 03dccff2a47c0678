package services

import (
	"context"

	"tasklist/internal/domain"
	"tasklist/internal/store"
)

// Notification messages shown after successful operations
const (
	MsgTaskAdded       = "Task added"
	MsgTaskUpdated     = "Task updated"
	MsgTaskDeleted     = "Task deleted"
	MsgTaskCompleted   = "Task marked as completed"
	MsgTaskInProgress  = "Task marked as in progress"
	MsgTasksSaved      = "Tasks saved"
	MsgTasksLoadedTmpl = "%s loaded"
)

// TaskInput is raw user input for a new task.
// DueDate is empty or a YYYY-MM-DD date.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// TaskPatch describes an edit. Nil fields keep the current value.
type TaskPatch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
	ClearDueDate bool    `json:"clear_due_date,omitempty"`
	Completed    *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && !p.ClearDueDate && p.Completed == nil
}

// Result describes a successful mutation
type Result struct {
	Task     domain.Task `json:"task"`
	Position int         `json:"position"` // 1-based
	Message  string      `json:"message"`
}

// Counts summarises the task list for status lines
type Counts struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
}

// TaskService handles the task list lifecycle: validation, store mutation and persistence.
//
// Mutating operations save after a successful change when autosave is on. A save
// failure is returned together with the Result; the in-memory change is kept.
type TaskService interface {
	// Persistence
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context) error
	Dirty() bool
	Path() string

	// Task operations; ref is a 1-based position, an ID or a unique ID prefix
	AddTask(ctx context.Context, input TaskInput) (*Result, error)
	EditTask(ctx context.Context, ref string, patch TaskPatch) (*Result, error)
	DeleteTask(ctx context.Context, ref string) (*Result, error)
	ToggleTask(ctx context.Context, ref string) (*Result, error)

	// Task operations addressed by exact ID; digits are never read as a position
	EditTaskByID(ctx context.Context, id string, patch TaskPatch) (*Result, error)
	DeleteTaskByID(ctx context.Context, id string) (*Result, error)
	ToggleTaskByID(ctx context.Context, id string) (*Result, error)

	// Queries
	GetTask(ref string) (store.Entry, error)
	ListTasks(term string, status domain.StatusFilter) []store.Entry
	Counts() Counts
}
