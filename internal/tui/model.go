// Package tui implements the interactive task list screen.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/services"
	"tasklist/internal/store"
	"tasklist/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// TaskManager is the part of services.TaskService the screen drives.
type TaskManager interface {
	AddTask(ctx context.Context, input services.TaskInput) (*services.Result, error)
	EditTaskByID(ctx context.Context, id string, patch services.TaskPatch) (*services.Result, error)
	DeleteTaskByID(ctx context.Context, id string) (*services.Result, error)
	ToggleTaskByID(ctx context.Context, id string) (*services.Result, error)
	ListTasks(term string, status domain.StatusFilter) []store.Entry
	Counts() services.Counts
	Save(ctx context.Context) error
	Dirty() bool
}

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeConfirmDelete
)

// Form field order
const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Due date (YYYY-MM-DD)"}

type formState struct {
	editingID string // empty when adding
	inputs    [fieldCount]textinput.Model
	focus     int
}

// Model is the bubbletea model of the task screen.
// The selection is tracked by task ID so it survives filtering and deletes.
type Model struct {
	ctx     context.Context
	manager TaskManager
	cfg     *config.Config

	entries    []store.Entry
	selectedID string
	filter     domain.StatusFilter
	search     textinput.Model

	mode          mode
	form          *formState
	pendingDelete *domain.Task
	quitArmed     bool

	message   string
	messageAt time.Time
	width     int
}

// New builds the screen. message is shown in the status bar on start.
func New(ctx context.Context, manager TaskManager, cfg *config.Config, message string) Model {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search title or description"
	search.CharLimit = 256

	m := Model{
		ctx:     ctx,
		manager: manager,
		cfg:     cfg,
		search:  search,
		mode:    modeList,
	}
	m.refresh(0)
	m.notify(message)
	return m
}

// Run starts the screen and blocks until the user quits.
func Run(ctx context.Context, manager TaskManager, cfg *config.Config, message string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(New(ctx, manager, cfg, message), opts...)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.search.Width = msg.Width - 10
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearchMode(msg)
		case modeForm:
			return m.updateFormMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	if key != "q" && key != "ctrl+c" {
		m.quitArmed = false
	}

	switch key {
	case "q", "ctrl+c":
		return m.quit()
	case "down", "j":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-1)
	case "home", "g":
		m.selectIndex(0)
	case "end", "G":
		m.selectIndex(len(m.entries) - 1)
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refresh(m.cursor())
			m.notify("Search cleared")
		}
	case "f":
		m.filter = m.filter.Next()
		m.refresh(m.cursor())
		m.notify("Showing " + m.filter.Label())
	case "a":
		return m.startForm(nil)
	case "e", "enter":
		entry, ok := m.selected()
		if !ok {
			m.notify("No task selected")
			return m, nil
		}
		return m.startForm(&entry.Task)
	case " ", "t":
		entry, ok := m.selected()
		if !ok {
			m.notify("No task selected")
			return m, nil
		}
		result, err := m.manager.ToggleTaskByID(m.ctx, entry.Task.ID)
		m.applyResult(result, err)
	case "d", "delete":
		entry, ok := m.selected()
		if !ok {
			m.notify("No task selected")
			return m, nil
		}
		task := entry.Task
		m.pendingDelete = &task
		m.mode = modeConfirmDelete
		m.notify(fmt.Sprintf("Delete %q? y/n", task.Title))
	case "ctrl+s":
		if err := m.manager.Save(m.ctx); err != nil {
			m.notify(errorMessage(err))
			return m, nil
		}
		m.notify(services.MsgTasksSaved)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if !m.manager.Dirty() || m.quitArmed {
		return m, tea.Quit
	}
	if err := m.manager.Save(m.ctx); err != nil {
		m.quitArmed = true
		m.notify(errorMessage(err) + " (press q again to quit without saving)")
		return m, nil
	}
	return m, tea.Quit
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.search.Blur()
		return m, nil
	case "esc":
		m.mode = modeList
		m.search.Blur()
		m.search.SetValue("")
		m.refresh(m.cursor())
		return m, nil
	case "ctrl+c":
		return m.quit()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh(m.cursor())
	return m, cmd
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if m.pendingDelete == nil {
			m.notify("Nothing to delete")
			break
		}
		index := m.cursor()
		result, err := m.manager.DeleteTaskByID(m.ctx, m.pendingDelete.ID)
		m.pendingDelete = nil
		m.mode = modeList
		m.applyDelete(index, result, err)
		return m, nil
	case "n", "N", "esc":
		m.notify("Delete cancelled")
	default:
		return m, nil
	}
	m.pendingDelete = nil
	m.mode = modeList
	return m, nil
}

func (m Model) startForm(task *domain.Task) (tea.Model, tea.Cmd) {
	form := &formState{}
	for i := range form.inputs {
		input := textinput.New()
		input.Placeholder = fieldLabels[i]
		input.Width = 50
		form.inputs[i] = input
	}
	form.inputs[fieldTitle].CharLimit = m.cfg.Validation.TitleMaxLength
	form.inputs[fieldDueDate].CharLimit = len(domain.DateLayout)

	if task != nil {
		form.editingID = task.ID
		form.inputs[fieldTitle].SetValue(task.Title)
		form.inputs[fieldDescription].SetValue(task.Description)
		form.inputs[fieldDueDate].SetValue(task.DueDateString())
		m.notify(fmt.Sprintf("Editing %q: enter to advance, esc to cancel", task.Title))
	} else {
		m.notify("New task: enter to advance, esc to cancel")
	}

	m.form = form
	m.mode = modeForm
	return m, form.inputs[fieldTitle].Focus()
}

func (m Model) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.form
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeList
		m.notify("Cancelled")
		return m, nil
	case "ctrl+c":
		return m.quit()
	case "tab", "down":
		return m, form.setFocus((form.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, form.setFocus((form.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if form.focus < fieldCount-1 {
			return m, form.setFocus(form.focus + 1)
		}
		return m.submitForm()
	case "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	form.inputs[form.focus], cmd = form.inputs[form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	form := m.form
	title := form.inputs[fieldTitle].Value()
	description := form.inputs[fieldDescription].Value()
	due := form.inputs[fieldDueDate].Value()

	var (
		result *services.Result
		err    error
	)
	if form.editingID == "" {
		result, err = m.manager.AddTask(m.ctx, services.TaskInput{Title: title, Description: description, DueDate: due})
	} else {
		patch := services.TaskPatch{Title: &title, Description: &description}
		if due == "" {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = &due
		}
		result, err = m.manager.EditTaskByID(m.ctx, form.editingID, patch)
	}

	if result == nil {
		// Rejected: keep the form open so the input can be corrected
		m.notify(errorMessage(err))
		return m, nil
	}

	m.form = nil
	m.mode = modeList
	m.applyResult(result, err)
	return m, nil
}

func (f *formState) setFocus(index int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = index
	return f.inputs[index].Focus()
}

// applyResult selects the affected task and reports the outcome.
// A save failure still carries the Result.
func (m *Model) applyResult(result *services.Result, err error) {
	if result == nil {
		m.notify(errorMessage(err))
		return
	}
	m.selectedID = result.Task.ID
	m.refresh(m.cursor())
	if err != nil {
		m.notify(fmt.Sprintf("%s, but %s", result.Message, errorMessage(err)))
		return
	}
	m.notify(result.Message)
}

func (m *Model) applyDelete(index int, result *services.Result, err error) {
	if result == nil {
		m.notify(errorMessage(err))
		return
	}
	m.selectedID = ""
	m.refresh(index)
	if err != nil {
		m.notify(fmt.Sprintf("%s, but %s", result.Message, errorMessage(err)))
		return
	}
	m.notify(result.Message)
}

// refresh reloads the visible entries. When the selected task is no longer
// visible the entry at fallback (clamped) is selected instead.
func (m *Model) refresh(fallback int) {
	m.entries = m.manager.ListTasks(m.search.Value(), m.filter)
	for _, entry := range m.entries {
		if entry.Task.ID == m.selectedID {
			return
		}
	}
	m.selectIndex(fallback)
}

func (m *Model) selectIndex(index int) {
	if len(m.entries) == 0 {
		m.selectedID = ""
		return
	}
	if index >= len(m.entries) {
		index = len(m.entries) - 1
	}
	if index < 0 {
		index = 0
	}
	m.selectedID = m.entries[index].Task.ID
}

func (m *Model) moveCursor(delta int) {
	m.selectIndex(m.cursor() + delta)
}

// cursor returns the row of the selected task, 0 when nothing is selected.
func (m Model) cursor() int {
	for i, entry := range m.entries {
		if entry.Task.ID == m.selectedID {
			return i
		}
	}
	return 0
}

func (m Model) selected() (store.Entry, bool) {
	for _, entry := range m.entries {
		if entry.Task.ID == m.selectedID {
			return entry, true
		}
	}
	return store.Entry{}, false
}

func (m *Model) notify(message string) {
	if message == "" {
		return
	}
	m.message = message
	m.messageAt = timeNow()
}

// SelectedID returns the ID of the highlighted task.
func (m Model) SelectedID() string {
	return m.selectedID
}

// StatusLine returns the status bar text.
func (m Model) StatusLine() string {
	if m.message == "" {
		return ""
	}
	return fmt.Sprintf("%s - %s", m.messageAt.Format("15:04:05"), m.message)
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	if ve, ok := validation.AsValidationError(err); ok {
		return ve.GetUserFriendlyMessage()
	}
	return errors.GetUserMessage(err)
}
