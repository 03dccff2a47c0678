// Package store holds the in-memory, ordered task list.
package store

import (
	"tasklist/internal/domain"
	"tasklist/internal/errors"
)

// Entry is a task together with its 0-based position in the store.
type Entry struct {
	Index int
	Task  domain.Task
}

// Position returns the 1-based position shown to users.
func (e Entry) Position() int {
	return e.Index + 1
}

// Store is an ordered collection of tasks in insertion order.
// Duplicate titles are allowed; IDs are unique within a store.
// A Store is not safe for concurrent use.
type Store struct {
	tasks []domain.Task
}

// New creates a store holding the given tasks.
func New(tasks ...domain.Task) *Store {
	s := &Store{}
	s.Reset(tasks)
	return s
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a snapshot of all tasks in order.
func (s *Store) Tasks() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	for i, task := range s.tasks {
		out[i] = task.Clone()
	}
	return out
}

// Reset replaces the working set. Tasks without an ID, or repeating an
// earlier ID, are given a fresh one.
func (s *Store) Reset(tasks []domain.Task) {
	s.tasks = make([]domain.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		task = task.Clone()
		if task.ID == "" || seen[task.ID] {
			task.ID = domain.NewID()
		}
		seen[task.ID] = true
		s.tasks = append(s.tasks, task)
	}
}

// At returns the task at index.
func (s *Store) At(index int) (domain.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return domain.Task{}, err
	}
	return s.tasks[index].Clone(), nil
}

// Add appends task to the end and returns its index.
func (s *Store) Add(task domain.Task) int {
	task = task.Clone()
	if task.ID == "" || s.hasID(task.ID) {
		task.ID = domain.NewID()
	}
	s.tasks = append(s.tasks, task)
	return len(s.tasks) - 1
}

// ReplaceAt replaces the task at index. The replaced task's ID is kept.
func (s *Store) ReplaceAt(index int, task domain.Task) (domain.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return domain.Task{}, err
	}
	task = task.Clone()
	task.ID = s.tasks[index].ID
	s.tasks[index] = task
	return task.Clone(), nil
}

// RemoveAt deletes the task at index. Later tasks shift down by one.
func (s *Store) RemoveAt(index int) (domain.Task, error) {
	if err := s.checkIndex(index); err != nil {
		return domain.Task{}, err
	}
	removed := s.tasks[index]
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return removed, nil
}

// ToggleCompletedAt flips the completion flag at index and returns the new state.
func (s *Store) ToggleCompletedAt(index int) (bool, error) {
	if err := s.checkIndex(index); err != nil {
		return false, err
	}
	s.tasks[index].Completed = !s.tasks[index].Completed
	return s.tasks[index].Completed, nil
}

// Filter returns, in store order, the tasks whose title or description
// contains term (case-insensitive) and whose state passes status.
func (s *Store) Filter(term string, status domain.StatusFilter) []domain.Task {
	entries := s.Select(term, status)
	out := make([]domain.Task, len(entries))
	for i, entry := range entries {
		out[i] = entry.Task
	}
	return out
}

// Select is Filter with each task's store position attached.
func (s *Store) Select(term string, status domain.StatusFilter) []Entry {
	entries := make([]Entry, 0, len(s.tasks))
	for i, task := range s.tasks {
		if status.Accepts(task) && task.MatchesTerm(term) {
			entries = append(entries, Entry{Index: i, Task: task.Clone()})
		}
	}
	return entries
}

// IndexOf returns the position of the task with the given ID.
func (s *Store) IndexOf(id string) (int, error) {
	for i, task := range s.tasks {
		if task.ID == id {
			return i, nil
		}
	}
	return -1, errors.NewNotFoundError("task", id)
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (domain.Task, error) {
	index, err := s.IndexOf(id)
	if err != nil {
		return domain.Task{}, err
	}
	return s.tasks[index].Clone(), nil
}

// Replace replaces the task with the given ID, keeping the ID.
func (s *Store) Replace(id string, task domain.Task) (domain.Task, error) {
	index, err := s.IndexOf(id)
	if err != nil {
		return domain.Task{}, err
	}
	return s.ReplaceAt(index, task)
}

// Remove deletes the task with the given ID.
func (s *Store) Remove(id string) (domain.Task, error) {
	index, err := s.IndexOf(id)
	if err != nil {
		return domain.Task{}, err
	}
	return s.RemoveAt(index)
}

// Toggle flips the completion flag of the task with the given ID.
func (s *Store) Toggle(id string) (bool, error) {
	index, err := s.IndexOf(id)
	if err != nil {
		return false, err
	}
	return s.ToggleCompletedAt(index)
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return errors.NewIndexError(index, len(s.tasks))
	}
	return nil
}

func (s *Store) hasID(id string) bool {
	_, err := s.IndexOf(id)
	return err == nil
}
