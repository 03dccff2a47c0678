package domain

import (
	"fmt"

	"tasklist/internal/errors"
)

// Record is the persisted form of a Task.
// The title, description, due_date and completed names are the file compatibility contract;
// id was added later and is optional on read.
type Record struct {
	Title       *string `json:"title" yaml:"title"`
	Description *string `json:"description" yaml:"description"`
	DueDate     *string `json:"due_date" yaml:"due_date"`
	Completed   *bool   `json:"completed" yaml:"completed"`
	ID          *string `json:"id,omitempty" yaml:"id,omitempty"`
}

// Serialize converts the task to its persisted record.
func (t Task) Serialize() Record {
	title := t.Title
	description := t.Description
	completed := t.Completed
	record := Record{
		Title:       &title,
		Description: &description,
		Completed:   &completed,
	}
	if t.DueDate != nil {
		due := t.DueDate.String()
		record.DueDate = &due
	}
	if t.ID != "" {
		id := t.ID
		record.ID = &id
	}
	return record
}

// Deserialize converts a persisted record back into a Task.
// A missing title or completed flag, or an unparseable due date, is a format error.
// Records without an id receive a fresh one.
func Deserialize(r Record) (Task, error) {
	if r.Title == nil {
		return Task{}, errors.NewFormatError("title", "field is missing", nil)
	}
	if r.Completed == nil {
		return Task{}, errors.NewFormatError("completed", "field is missing", nil)
	}

	task := Task{
		Title:     *r.Title,
		Completed: *r.Completed,
	}
	if r.Description != nil {
		task.Description = *r.Description
	}
	if r.DueDate != nil && *r.DueDate != "" {
		due, err := ParseDate(*r.DueDate)
		if err != nil {
			return Task{}, errors.NewFormatError("due_date", fmt.Sprintf("%q is not a valid YYYY-MM-DD date", *r.DueDate), err)
		}
		task.DueDate = &due
	}
	if r.ID != nil && *r.ID != "" {
		task.ID = *r.ID
	} else {
		task.ID = NewID()
	}

	return task, nil
}

// SerializeAll converts tasks to records, preserving order.
func SerializeAll(tasks []Task) []Record {
	records := make([]Record, len(tasks))
	for i, task := range tasks {
		records[i] = task.Serialize()
	}
	return records
}

// DeserializeAll converts records to tasks, preserving order.
// The error names the 1-based record that failed.
func DeserializeAll(records []Record) ([]Task, error) {
	tasks := make([]Task, 0, len(records))
	for i, record := range records {
		task, err := Deserialize(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
