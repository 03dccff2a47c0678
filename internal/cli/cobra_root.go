package cli

import (
	"github.com/spf13/cobra"

	"tasklist/internal/config"
)

// annotationStorage marks commands that load the task list before running
const annotationStorage = "storage"

// interactive is implemented by commands that wait on the user
type interactive interface {
	Interactive() bool
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App

	configPath string
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}
	app.registry = NewCommandRegistry()

	root.cmd = &cobra.Command{
		Use:   "tasks",
		Short: "A command-line task list manager",
		Long: `tasks keeps an ordered list of tasks with titles, descriptions, due dates
and a completion flag, stored in a local JSON file or SQLite database.

EXAMPLES:
  tasks add "Buy milk" -d "semi-skimmed" --due tomorrow
  tasks list                         # All tasks
  tasks list milk -s incomplete      # Open tasks mentioning "milk"
  tasks toggle 2                     # Complete (or reopen) the second task
  tasks edit 3f2a --title "Pay rent" # Tasks are addressed by position or ID prefix
  tasks delete 1
  tasks export -f pdf -o tasks.pdf
  tasks ui                           # Interactive mode

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables >
  config file (--config or TASKS_CONFIG) > defaults. A .env file in the working directory
  is loaded first.

  Storage:
    TASKS_DIR                 Storage directory (default: .)
    TASKS_FILE                File name (default: tasks.json, tasks.db for sqlite)
    TASKS_BACKEND             json or sqlite (default: json)
    TASKS_DIR_PERMISSIONS     Directory mode (default: 0755)
    TASKS_FILE_PERMISSIONS    File mode (default: 0644)

  Display:
    TASKS_DESCRIPTION_WIDTH   Description column width (default: 50)
    TASKS_DATE_FORMAT         Due date layout (default: 2006-01-02)
    TASKS_RELATIVE_DUE        Show "tomorrow", "3 days ago" (default: true)

  Validation:
    TASKS_TITLE_MAX           Max title length (default: 200)
    TASKS_DESCRIPTION_MAX     Max description length (default: 2000)

  Application:
    TASKS_TIMEOUT             Command timeout (default: 30s)
    TASKS_AUTOSAVE            Save after every change (default: true)
    TASKS_LOG_LEVEL           debug, info, warn or error (default: warn)
    TASKS_LOG_FORMAT          console or json (default: console)
    TASKS_DEBUG               Any value forces debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationStorage] != "true" {
				return nil
			}
			return app.setup(cmd.Context(), root.configPath, root.overridesFromFlags())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configPath, "config", "", "YAML config file (overrides TASKS_CONFIG)")

	// Storage configuration
	flags.String("file", "", "Task file name or path (overrides TASKS_FILE)")
	flags.String("dir", "", "Storage directory (overrides TASKS_DIR)")
	flags.String("backend", "", "Storage backend: json or sqlite (overrides TASKS_BACKEND)")

	// Display configuration
	flags.Int("description-width", 0, "Description column width (overrides TASKS_DESCRIPTION_WIDTH)")

	// Application configuration
	flags.Duration("timeout", 0, "Command timeout (overrides TASKS_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides TASKS_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides TASKS_LOG_LEVEL)")
}

// overridesFromFlags collects the global flags given on the command line
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("dir") {
		dir, _ := flags.GetString("dir")
		overrides.Dir = &dir
	}
	if flags.Changed("file") {
		file, _ := flags.GetString("file")
		overrides.Filename = &file
	}
	if flags.Changed("backend") {
		backend, _ := flags.GetString("backend")
		overrides.Backend = &backend
	}
	if flags.Changed("description-width") {
		width, _ := flags.GetInt("description-width")
		overrides.DescriptionWidth = &width
	}
	if flags.Changed("timeout") {
		timeout, _ := flags.GetDuration("timeout")
		overrides.Timeout = &timeout
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		overrides.LogLevel = &level
	}

	return overrides
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	add := NewAddCommand(r.app)
	addCmd := r.newCommand("add", add, &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a task",
		Long: `Add a task to the end of the list. The arguments are joined into the title.

Due dates use YYYY-MM-DD; "today" and "tomorrow" are also accepted.`,
		Args: cobra.MinimumNArgs(1),
	})
	addCmd.Flags().StringVarP(&add.description, "description", "d", "", "Task description")
	addCmd.Flags().StringVar(&add.due, "due", "", "Due date (YYYY-MM-DD)")

	edit := NewEditCommand(r.app)
	editCmd := r.newCommand("edit", edit, &cobra.Command{
		Use:   "edit REF",
		Short: "Edit a task",
		Long: `Edit the task at a position (1-based) or with an ID or ID prefix.
Only the given flags change; the task keeps its ID and position.`,
		Args: cobra.ExactArgs(1),
	})
	editCmd.Flags().StringVar(&edit.title, "title", "", "New title")
	editCmd.Flags().StringVarP(&edit.description, "description", "d", "", "New description")
	editCmd.Flags().StringVar(&edit.due, "due", "", "New due date (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&edit.clearDue, "clear-due", false, "Remove the due date")
	editCmd.Flags().BoolVar(&edit.completed, "completed", false, "Set the completion state")
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	edit.changed = editCmd.Flags().Changed

	del := NewDeleteCommand(r.app)
	deleteCmd := r.newCommand("delete", del, &cobra.Command{
		Use:     "delete REF",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long:    "Delete the referenced task. You are asked to confirm unless --yes is given.",
		Args:    cobra.ExactArgs(1),
	})
	deleteCmd.Flags().BoolVarP(&del.yes, "yes", "y", false, "Delete without asking")

	r.newCommand("toggle", NewToggleCommand(r.app), &cobra.Command{
		Use:     "toggle REF...",
		Aliases: []string{"done"},
		Short:   "Toggle completion of tasks",
		Args:    cobra.MinimumNArgs(1),
	})

	list := NewListCommand(r.app)
	listCmd := r.newCommand("list", list, &cobra.Command{
		Use:     "list [SEARCH...]",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks in order. Search words match the title or description,
case-insensitively.

Examples:
  tasks list
  tasks list rent
  tasks list -s completed`,
	})
	listCmd.Flags().StringVarP(&list.status, "status", "s", "all", "Status filter: all, incomplete or completed")
	listCmd.Flags().BoolVar(&list.json, "json", false, "Print the tasks as JSON records")

	r.newCommand("show", NewShowCommand(r.app), &cobra.Command{
		Use:   "show REF",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
	})

	exp := NewExportCommand(r.app)
	exportCmd := r.newCommand("export", exp, &cobra.Command{
		Use:   "export [SEARCH...]",
		Short: "Export tasks",
		Long: `Export the matching tasks as csv, json, yaml or pdf.

Without --output the export is written to standard output. The format is taken
from the output file extension unless --format is given.

Examples:
  tasks export > tasks.csv
  tasks export -o report.pdf
  tasks export rent -f yaml -s incomplete`,
	})
	exportCmd.Flags().StringVarP(&exp.format, "format", "f", string(DefaultExportFormat), "Export format: csv, json, yaml or pdf")
	exportCmd.Flags().StringVarP(&exp.output, "output", "o", "", "Output file")
	exportCmd.Flags().StringVarP(&exp.status, "status", "s", "all", "Status filter: all, incomplete or completed")
	exp.changed = exportCmd.Flags().Changed

	r.newCommand("ui", NewUICommand(r.app), &cobra.Command{
		Use:   "ui",
		Short: "Start interactive mode",
		Long: `Browse and edit the task list in the terminal.

Keys: j/k move, / search, f cycle the status filter, a add, e edit,
space toggle, d delete, ctrl+s save, q quit.`,
		Args: cobra.NoArgs,
	})
}

// newCommand registers handler under name and attaches cmd to the root.
// The handler runs with the configured timeout unless it is interactive.
func (r *RootCommand) newCommand(name string, handler Command, cmd *cobra.Command) *cobra.Command {
	r.app.registry.Register(name, handler)

	cmd.Annotations = map[string]string{annotationStorage: "true"}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		waits := false
		if i, ok := handler.(interactive); ok {
			waits = i.Interactive()
		}

		ctx, cancel := r.app.commandContext(cmd.Context(), waits)
		defer cancel()

		return r.app.registry.Execute(ctx, name, args)
	}

	r.cmd.AddCommand(cmd)
	return cmd
}
