package domain

import (
	"fmt"

	"tasklist/internal/errors"
	"tasklist/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database row at the given position.
func (m *TaskMapper) ToDatabase(domainTask Task, position int) *sqlite.TaskRow {
	return &sqlite.TaskRow{
		ID:          domainTask.ID,
		Position:    position,
		Title:       domainTask.Title,
		Description: domainTask.Description,
		DueDate:     sqlite.NullableString(domainTask.DueDateString()),
		Completed:   domainTask.Completed,
	}
}

// FromDatabase converts a database row to a domain Task.
// A stored due date that is not a valid calendar date is a format error.
func (m *TaskMapper) FromDatabase(row *sqlite.TaskRow) (Task, error) {
	task := Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Completed:   row.Completed,
	}
	if due := sqlite.StringFromNull(row.DueDate); due != "" {
		date, err := ParseDate(due)
		if err != nil {
			return Task{}, errors.NewFormatError("due_date", fmt.Sprintf("%q is not a valid YYYY-MM-DD date", due), err)
		}
		task.DueDate = &date
	}
	if task.ID == "" {
		task.ID = NewID()
	}
	return task, nil
}

// ToDatabaseSlice converts domain Tasks to rows, numbering positions from zero.
func (m *TaskMapper) ToDatabaseSlice(domainTasks []Task) []*sqlite.TaskRow {
	rows := make([]*sqlite.TaskRow, len(domainTasks))
	for i, task := range domainTasks {
		rows[i] = m.ToDatabase(task, i)
	}
	return rows
}

// FromDatabaseSlice converts rows to domain Tasks, preserving order.
func (m *TaskMapper) FromDatabaseSlice(rows []*sqlite.TaskRow) ([]Task, error) {
	tasks := make([]Task, 0, len(rows))
	for _, row := range rows {
		task, err := m.FromDatabase(row)
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", row.ID, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}
