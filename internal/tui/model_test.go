package tui

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/services"
)

type memoryRepository struct {
	tasks   []domain.Task
	saveErr error
}

func (r *memoryRepository) Load(ctx context.Context) ([]domain.Task, error) {
	return append([]domain.Task(nil), r.tasks...), nil
}

func (r *memoryRepository) Save(ctx context.Context, tasks []domain.Task) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.tasks = append([]domain.Task(nil), tasks...)
	return nil
}

func (r *memoryRepository) Path() string { return "memory" }
func (r *memoryRepository) Close() error { return nil }

func fixedClock(t *testing.T) {
	t.Helper()
	original := timeNow
	timeNow = func() time.Time { return time.Date(2025, time.April, 20, 12, 34, 56, 0, time.Local) }
	t.Cleanup(func() { timeNow = original })
}

func setupModel(t *testing.T, cfg *config.Config) (Model, services.TaskService, *memoryRepository) {
	t.Helper()
	fixedClock(t)

	due := domain.Date{Year: 2025, Month: time.May, Day: 1}
	repo := &memoryRepository{tasks: []domain.Task{
		{ID: "id-milk", Title: "Buy milk", Description: "corner shop"},
		{ID: "id-rent", Title: "Pay rent", DueDate: &due, Completed: true},
		{ID: "id-call", Title: "Call mum"},
	}}
	service := services.NewTaskService(repo, cfg, zerolog.Nop())
	count, err := service.Load(context.Background())
	require.NoError(t, err)

	return New(context.Background(), service, cfg, services.LoadedMessage(count)), service, repo
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, key := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(key))
		m = next.(Model)
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, string(r))
	}
	return m
}

func TestModel_StartsWithLoadedMessage(t *testing.T) {
	m, _, _ := setupModel(t, nil)

	assert.Equal(t, "12:34:56 - 3 tasks loaded", m.StatusLine())
	assert.Equal(t, "id-milk", m.SelectedID())
	assert.Len(t, m.entries, 3)
}

func TestModel_Navigation(t *testing.T) {
	m, _, _ := setupModel(t, nil)

	m, _ = press(t, m, "j")
	assert.Equal(t, "id-rent", m.SelectedID())
	m, _ = press(t, m, "j", "j", "j")
	assert.Equal(t, "id-call", m.SelectedID(), "cursor stops at the last row")
	m, _ = press(t, m, "k")
	assert.Equal(t, "id-rent", m.SelectedID())
	m, _ = press(t, m, "g")
	assert.Equal(t, "id-milk", m.SelectedID())
	m, _ = press(t, m, "G")
	assert.Equal(t, "id-call", m.SelectedID())
}

func TestModel_AddTask(t *testing.T) {
	m, service, repo := setupModel(t, nil)

	m, _ = press(t, m, "a")
	require.Equal(t, modeForm, m.mode)
	m = typeText(t, m, "Buy bread")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "wholemeal")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "2025-06-01")
	m, _ = press(t, m, "enter")

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "12:34:56 - Task added", m.StatusLine())

	entries := service.ListTasks("", domain.StatusAll)
	require.Len(t, entries, 4)
	added := entries[3].Task
	assert.Equal(t, "Buy bread", added.Title)
	assert.Equal(t, "wholemeal", added.Description)
	assert.Equal(t, "2025-06-01", added.DueDateString())
	assert.Equal(t, added.ID, m.SelectedID(), "the new task is selected")
	assert.Len(t, repo.tasks, 4)
}

func TestModel_AddTask_RejectedKeepsForm(t *testing.T) {
	m, service, _ := setupModel(t, nil)

	m, _ = press(t, m, "a", "enter", "enter", "enter")

	assert.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.StatusLine(), "title is required")
	assert.Len(t, service.ListTasks("", domain.StatusAll), 3)

	m, _ = press(t, m, "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "12:34:56 - Cancelled", m.StatusLine())
}

func TestModel_AddTask_InvalidDueDate(t *testing.T) {
	m, service, _ := setupModel(t, nil)

	m, _ = press(t, m, "a")
	m = typeText(t, m, "x")
	m, _ = press(t, m, "tab", "tab")
	m = typeText(t, m, "2025-02-29")
	m, _ = press(t, m, "enter")

	assert.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.StatusLine(), "due date")
	assert.Len(t, service.ListTasks("", domain.StatusAll), 3)
}

func TestModel_EditTask(t *testing.T) {
	m, service, _ := setupModel(t, nil)

	m, _ = press(t, m, "j", "e")
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "Pay rent", m.form.inputs[fieldTitle].Value())
	assert.Equal(t, "2025-05-01", m.form.inputs[fieldDueDate].Value())

	m = typeText(t, m, " online")
	m, _ = press(t, m, "ctrl+s")

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "12:34:56 - Task updated", m.StatusLine())

	entry, err := service.GetTask("id-rent")
	require.NoError(t, err)
	assert.Equal(t, "Pay rent online", entry.Task.Title)
	assert.Equal(t, "2025-05-01", entry.Task.DueDateString())
	assert.True(t, entry.Task.Completed, "editing keeps the completion state")
	assert.Equal(t, 1, entry.Index, "editing keeps the position")
	assert.Equal(t, "id-rent", m.SelectedID())
}

func TestModel_ToggleTask(t *testing.T) {
	m, service, _ := setupModel(t, nil)

	m, _ = press(t, m, " ")
	assert.Equal(t, "12:34:56 - Task marked as completed", m.StatusLine())
	assert.Equal(t, "id-milk", m.SelectedID())

	entry, err := service.GetTask("id-milk")
	require.NoError(t, err)
	assert.True(t, entry.Task.Completed)

	m, _ = press(t, m, "t")
	assert.Equal(t, "12:34:56 - Task marked as in progress", m.StatusLine())
}

func TestModel_ToggleFollowsTaskUnderFilter(t *testing.T) {
	m, _, _ := setupModel(t, nil)

	m, _ = press(t, m, "f")
	assert.Equal(t, domain.StatusIncomplete, m.filter)
	require.Len(t, m.entries, 2)

	// Completing the selected task hides it; the selection moves to the next visible row
	m, _ = press(t, m, " ")
	require.Len(t, m.entries, 1)
	assert.Equal(t, "id-call", m.SelectedID())
}

func TestModel_DeleteTask(t *testing.T) {
	m, service, _ := setupModel(t, nil)

	m, _ = press(t, m, "j", "d")
	require.Equal(t, modeConfirmDelete, m.mode)
	assert.Equal(t, "12:34:56 - Delete \"Pay rent\"? y/n", m.StatusLine())

	m, _ = press(t, m, "y")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "12:34:56 - Task deleted", m.StatusLine())
	assert.Equal(t, "id-call", m.SelectedID(), "the row below moves up")

	entries := service.ListTasks("", domain.StatusAll)
	require.Len(t, entries, 2)
	assert.Equal(t, "Buy milk", entries[0].Task.Title)
	assert.Equal(t, "Call mum", entries[1].Task.Title)
}

func TestModel_NumericIDsAreNotPositions(t *testing.T) {
	fixedClock(t)
	repo := &memoryRepository{tasks: []domain.Task{
		{ID: "2", Title: "First row"},
		{ID: "1", Title: "Second row"},
	}}
	service := services.NewTaskService(repo, nil, zerolog.Nop())
	count, err := service.Load(context.Background())
	require.NoError(t, err)
	m := New(context.Background(), service, nil, services.LoadedMessage(count))

	m, _ = press(t, m, " ")
	entries := service.ListTasks("", domain.StatusAll)
	assert.True(t, entries[0].Task.Completed)
	assert.False(t, entries[1].Task.Completed)

	m, _ = press(t, m, "d", "y")
	assert.Equal(t, "12:34:56 - Task deleted", m.StatusLine())

	entries = service.ListTasks("", domain.StatusAll)
	require.Len(t, entries, 1)
	assert.Equal(t, "Second row", entries[0].Task.Title)
}

func TestModel_DeleteCancelled(t *testing.T) {
	m, service, _ := setupModel(t, nil)

	m, _ = press(t, m, "d", "x")
	assert.Equal(t, modeConfirmDelete, m.mode, "other keys are ignored while confirming")

	m, _ = press(t, m, "n")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "12:34:56 - Delete cancelled", m.StatusLine())
	assert.Len(t, service.ListTasks("", domain.StatusAll), 3)
}

func TestModel_SearchFiltersOnEveryKeystroke(t *testing.T) {
	m, _, _ := setupModel(t, nil)

	m, _ = press(t, m, "/")
	require.Equal(t, modeSearch, m.mode)

	m = typeText(t, m, "m")
	assert.Len(t, m.entries, 2, "milk and mum")
	m = typeText(t, m, "il")
	require.Len(t, m.entries, 1)
	assert.Equal(t, "id-milk", m.SelectedID())

	m, _ = press(t, m, "enter")
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, m.entries, 1, "the term stays applied")

	m, _ = press(t, m, "esc")
	assert.Len(t, m.entries, 3)
	assert.Equal(t, "id-milk", m.SelectedID())
}

func TestModel_SearchSelectionMovesWhenHidden(t *testing.T) {
	m, _, _ := setupModel(t, nil)

	m, _ = press(t, m, "/")
	m = typeText(t, m, "rent")
	require.Len(t, m.entries, 1)
	assert.Equal(t, "id-rent", m.SelectedID())
}

func TestModel_FilterCycle(t *testing.T) {
	m, _, _ := setupModel(t, nil)

	m, _ = press(t, m, "f")
	assert.Equal(t, "12:34:56 - Showing In progress", m.StatusLine())
	m, _ = press(t, m, "f")
	require.Len(t, m.entries, 1)
	assert.Equal(t, "id-rent", m.SelectedID())
	m, _ = press(t, m, "f")
	assert.Equal(t, domain.StatusAll, m.filter)
	assert.Equal(t, "id-rent", m.SelectedID(), "selection is kept by ID")
}

func TestModel_SaveFailureKeepsChange(t *testing.T) {
	m, service, repo := setupModel(t, nil)
	repo.saveErr = errors.NewSaveError("memory", stderrors.New("read-only"))

	m, _ = press(t, m, " ")

	assert.Contains(t, m.StatusLine(), "Task marked as completed, but could not save tasks to memory")
	entry, err := service.GetTask("id-milk")
	require.NoError(t, err)
	assert.True(t, entry.Task.Completed)
}

func TestModel_QuitSavesPendingChanges(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Application.Autosave = false
	m, service, repo := setupModel(t, cfg)

	m, _ = press(t, m, " ")
	require.True(t, service.Dirty())

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, service.Dirty())
	assert.True(t, repo.tasks[0].Completed)
}

func TestModel_QuitAfterFailedSaveNeedsSecondPress(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Application.Autosave = false
	m, _, repo := setupModel(t, cfg)
	repo.saveErr = errors.NewSaveError("memory", stderrors.New("read-only"))

	m, _ = press(t, m, " ")
	m, cmd := press(t, m, "q")
	assert.Nil(t, cmd)
	assert.Contains(t, m.StatusLine(), "press q again")

	_, cmd = press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_QuitWhenClean(t *testing.T) {
	m, _, _ := setupModel(t, nil)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m, _, _ := setupModel(t, nil)

	view := m.View()
	assert.Contains(t, view, "Tasks [All] 3 tasks, 1 completed")
	assert.Contains(t, view, "> [ ] 1. Buy milk  corner shop")
	assert.Contains(t, view, "  [x] 2. Pay rent  due 2025-05-01")
	assert.Contains(t, view, "12:34:56 - 3 tasks loaded")
	assert.Contains(t, view, helpLine)
}

func TestModel_ViewEmpty(t *testing.T) {
	fixedClock(t)
	service := services.NewTaskService(&memoryRepository{}, nil, zerolog.Nop())
	m := New(context.Background(), service, nil, "")

	assert.Contains(t, m.View(), "No tasks yet. Press 'a' to add one.")
	assert.Empty(t, m.StatusLine())

	m, _ = press(t, m, "d")
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "12:34:56 - No task selected", m.StatusLine())
}

func TestModel_ViewMarksOverdue(t *testing.T) {
	m, service, _ := setupModel(t, nil)
	_, err := service.AddTask(context.Background(), services.TaskInput{Title: "Late", DueDate: "2025-04-01"})
	require.NoError(t, err)
	m.refresh(0)

	assert.Contains(t, m.View(), "4. Late  due 2025-04-01 (overdue)")
}
