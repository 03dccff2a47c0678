package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"tasklist/internal/config"
	"tasklist/internal/errors"
	"tasklist/internal/logging"
	"tasklist/internal/repository"
	"tasklist/internal/services"
	"tasklist/internal/tui"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// RepositoryOpener opens the configured storage backend
type RepositoryOpener func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Repository, error)

// UIRunner starts the interactive screen
type UIRunner func(ctx context.Context, manager tui.TaskManager, cfg *config.Config, message string) error

// App represents the main CLI application.
// It owns the I/O streams and, once a command needing storage runs, the
// configuration, logger, repository and task service.
type App struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	config       *config.Config
	logger       zerolog.Logger
	repo         repository.Repository
	service      services.TaskService
	loadMessage  string
	errorHandler *ErrorHandler
	registry     *CommandRegistry

	openRepository RepositoryOpener
	runUI          UIRunner
}

// NewApp creates a new CLI application instance over the given streams
func NewApp(in io.Reader, out, errOut io.Writer) *App {
	app := &App{
		in:             in,
		out:            out,
		errOut:         errOut,
		logger:         zerolog.Nop(),
		errorHandler:   NewErrorHandler(),
		openRepository: repository.Open,
	}
	app.runUI = func(ctx context.Context, manager tui.TaskManager, cfg *config.Config, message string) error {
		return tui.Run(ctx, manager, cfg, message, tea.WithInput(app.in), tea.WithOutput(app.out))
	}
	return app
}

// WithRepositoryOpener replaces the storage backend factory
func (a *App) WithRepositoryOpener(open RepositoryOpener) *App {
	a.openRepository = open
	return a
}

// WithUIRunner replaces the interactive screen
func (a *App) WithUIRunner(run UIRunner) *App {
	a.runUI = run
	return a
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	root := NewRootCommand(a)
	root.cmd.SetArgs(args)
	root.cmd.SetIn(a.in)
	root.cmd.SetOut(a.out)
	root.cmd.SetErr(a.errOut)

	err := root.cmd.ExecuteContext(ctx)
	if closeErr := a.Close(); closeErr != nil && err == nil {
		err = a.errorHandler.Handle("close storage", closeErr)
	}
	return err
}

// setup loads the configuration, opens storage and loads the task list.
// A load failure is reported on stderr and the command continues with an empty list.
func (a *App) setup(ctx context.Context, configPath string, overrides *config.ConfigOverrides) error {
	cfg, err := config.NewLoader(configPath).LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.config = cfg
	a.logger = logging.New(a.errOut, cfg.Logging)

	repo, err := a.openRepository(ctx, cfg, a.logger)
	if err != nil {
		return a.errorHandler.Handle("open storage", err)
	}
	a.repo = repo
	a.service = services.NewTaskService(repo, cfg, a.logger)

	count, err := a.service.Load(ctx)
	if errors.IsErrorType(err, errors.ErrorTypeTimeout) {
		// The stored list may be intact, so never continue with an empty set here
		return a.errorHandler.Handle("load tasks", err)
	}
	if err != nil {
		a.loadMessage = a.errorHandler.HandleSimple(err).Error()
		fmt.Fprintf(a.errOut, "Warning: %s\n", a.loadMessage)
		return nil
	}
	a.loadMessage = services.LoadedMessage(count)
	a.logger.Info().Str("path", repo.Path()).Msg(a.loadMessage)
	return nil
}

// Close releases the storage backend
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}

// commandContext bounds a command by the configured timeout.
// Interactive commands wait on the user and get no deadline.
func (a *App) commandContext(parent context.Context, interactive bool) (context.Context, context.CancelFunc) {
	if interactive || a.config == nil {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, a.config.GetTimeout())
}

// printResult prints the notification of a mutation
func (a *App) printResult(result *services.Result) {
	if result == nil {
		return
	}
	fmt.Fprintf(a.out, "%s: %d. %s\n", result.Message, result.Position, result.Task.Title)
}
