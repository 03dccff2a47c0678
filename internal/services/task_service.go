package services

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize/english"
	"github.com/rs/zerolog"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/repository"
	"tasklist/internal/store"
	"tasklist/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.Repository
	store         *store.Store
	taskValidator *validation.TaskValidator
	logger        zerolog.Logger
	autosave      bool
	dirty         bool
}

// NewTaskService creates a new TaskService instance over an empty store.
// A nil cfg uses the defaults.
func NewTaskService(repo repository.Repository, cfg *config.Config, logger zerolog.Logger) TaskService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &taskServiceImpl{
		repo:          repo,
		store:         store.New(),
		taskValidator: validation.NewTaskValidatorWithConfig(cfg),
		logger:        logger,
		autosave:      cfg.Application.Autosave,
	}
}

// LoadedMessage returns the notification shown after a load.
func LoadedMessage(count int) string {
	return fmt.Sprintf(MsgTasksLoadedTmpl, english.Plural(count, "task", ""))
}

// Load replaces the working set with the stored tasks and returns their number.
// On failure the working set is empty and the error is returned for reporting.
func (t *taskServiceImpl) Load(ctx context.Context) (int, error) {
	tasks, err := t.repo.Load(ctx)
	if err == nil {
		err = t.checkLoaded(tasks)
	}
	if err != nil {
		t.store.Reset(nil)
		t.dirty = false
		t.logError(err, "failed to load tasks")
		return 0, err
	}

	t.store.Reset(tasks)
	t.dirty = false
	t.logger.Debug().Str("path", t.repo.Path()).Int("count", t.store.Len()).Msg("loaded tasks")
	return t.store.Len(), nil
}

// checkLoaded rejects stored tasks that could not have been entered, such as a blank title.
func (t *taskServiceImpl) checkLoaded(tasks []domain.Task) error {
	for i, task := range tasks {
		if err := t.taskValidator.ValidateTask(task); err != nil {
			return errors.NewLoadError(t.repo.Path(),
				fmt.Errorf("record %d: %w", i+1, errors.NewFormatError("task", err.Error(), err)))
		}
	}
	return nil
}

// Save writes the working set.
func (t *taskServiceImpl) Save(ctx context.Context) error {
	if err := t.repo.Save(ctx, t.store.Tasks()); err != nil {
		t.logError(err, "failed to save tasks")
		return err
	}
	t.dirty = false
	t.logger.Debug().Str("path", t.repo.Path()).Int("count", t.store.Len()).Msg("saved tasks")
	return nil
}

// Dirty reports whether the working set has unsaved changes.
func (t *taskServiceImpl) Dirty() bool {
	return t.dirty
}

// Path returns the storage location.
func (t *taskServiceImpl) Path() string {
	return t.repo.Path()
}

// AddTask validates input and appends a new, incomplete task
func (t *taskServiceImpl) AddTask(ctx context.Context, input TaskInput) (*Result, error) {
	fields, err := t.taskValidator.ValidateTaskInput(input.Title, input.Description, input.DueDate)
	if err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	task := domain.NewTask(fields.Title, fields.Description, fields.DueDate, false)
	index := t.store.Add(task)
	stored, _ := t.store.At(index)

	t.logger.Info().Str("task_id", stored.ID).Int("position", index+1).Msg("added task")
	return t.commit(ctx, stored, index, MsgTaskAdded)
}

// EditTask applies patch to the referenced task, keeping its ID and position
func (t *taskServiceImpl) EditTask(ctx context.Context, ref string, patch TaskPatch) (*Result, error) {
	index, err := t.store.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return t.editAt(ctx, index, patch)
}

// EditTaskByID applies patch to the task with exactly this ID
func (t *taskServiceImpl) EditTaskByID(ctx context.Context, id string, patch TaskPatch) (*Result, error) {
	index, err := t.store.IndexOf(id)
	if err != nil {
		return nil, err
	}
	return t.editAt(ctx, index, patch)
}

func (t *taskServiceImpl) editAt(ctx context.Context, index int, patch TaskPatch) (*Result, error) {
	current, err := t.store.At(index)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if patch.Title != nil {
		title = *patch.Title
	}
	description := current.Description
	if patch.Description != nil {
		description = *patch.Description
	}
	due := current.DueDateString()
	if patch.DueDate != nil {
		due = *patch.DueDate
	}
	if patch.ClearDueDate {
		due = ""
	}

	fields, err := t.taskValidator.ValidateTaskInput(title, description, due)
	if err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	completed := current.Completed
	if patch.Completed != nil {
		completed = *patch.Completed
	}

	updated, err := t.store.ReplaceAt(index, domain.Task{
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		Completed:   completed,
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info().Str("task_id", updated.ID).Int("position", index+1).Msg("updated task")
	return t.commit(ctx, updated, index, MsgTaskUpdated)
}

// DeleteTask removes the referenced task
func (t *taskServiceImpl) DeleteTask(ctx context.Context, ref string) (*Result, error) {
	index, err := t.store.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return t.deleteAt(ctx, index)
}

// DeleteTaskByID removes the task with exactly this ID
func (t *taskServiceImpl) DeleteTaskByID(ctx context.Context, id string) (*Result, error) {
	index, err := t.store.IndexOf(id)
	if err != nil {
		return nil, err
	}
	return t.deleteAt(ctx, index)
}

func (t *taskServiceImpl) deleteAt(ctx context.Context, index int) (*Result, error) {
	removed, err := t.store.RemoveAt(index)
	if err != nil {
		return nil, err
	}

	t.logger.Info().Str("task_id", removed.ID).Int("position", index+1).Msg("deleted task")
	return t.commit(ctx, removed, index, MsgTaskDeleted)
}

// ToggleTask flips the completion state of the referenced task
func (t *taskServiceImpl) ToggleTask(ctx context.Context, ref string) (*Result, error) {
	index, err := t.store.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return t.toggleAt(ctx, index)
}

// ToggleTaskByID flips the completion state of the task with exactly this ID
func (t *taskServiceImpl) ToggleTaskByID(ctx context.Context, id string) (*Result, error) {
	index, err := t.store.IndexOf(id)
	if err != nil {
		return nil, err
	}
	return t.toggleAt(ctx, index)
}

func (t *taskServiceImpl) toggleAt(ctx context.Context, index int) (*Result, error) {
	completed, err := t.store.ToggleCompletedAt(index)
	if err != nil {
		return nil, err
	}
	task, _ := t.store.At(index)

	message := MsgTaskInProgress
	if completed {
		message = MsgTaskCompleted
	}

	t.logger.Info().Str("task_id", task.ID).Bool("completed", completed).Msg("toggled task")
	return t.commit(ctx, task, index, message)
}

// GetTask returns the referenced task with its position
func (t *taskServiceImpl) GetTask(ref string) (store.Entry, error) {
	index, err := t.store.Resolve(ref)
	if err != nil {
		return store.Entry{}, err
	}
	task, err := t.store.At(index)
	if err != nil {
		return store.Entry{}, err
	}
	return store.Entry{Index: index, Task: task}, nil
}

// ListTasks returns the tasks matching term and status in list order
func (t *taskServiceImpl) ListTasks(term string, status domain.StatusFilter) []store.Entry {
	return t.store.Select(term, status)
}

// Counts returns the number of tasks per state
func (t *taskServiceImpl) Counts() Counts {
	counts := Counts{Total: t.store.Len()}
	for _, task := range t.store.Tasks() {
		if task.Completed {
			counts.Completed++
		}
	}
	counts.Incomplete = counts.Total - counts.Completed
	return counts
}

// commit marks the store dirty, saves when autosave is on and builds the Result.
// The Result is returned even when saving fails.
func (t *taskServiceImpl) commit(ctx context.Context, task domain.Task, index int, message string) (*Result, error) {
	t.dirty = true
	result := &Result{Task: task, Position: index + 1, Message: message}

	if !t.autosave {
		return result, nil
	}
	return result, t.Save(ctx)
}

func (t *taskServiceImpl) logError(err error, msg string) {
	code := errors.GetErrorCode(err)
	if errors.ShouldLogError(err) {
		t.logger.Error().Err(err).Str("code", code).Msg(msg)
		return
	}
	t.logger.Debug().Err(err).Str("code", code).Msg(msg)
}
