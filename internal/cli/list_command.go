package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize/english"

	"tasklist/internal/domain"
	"tasklist/internal/export"
	"tasklist/internal/store"
)

// ListCommand handles the list command
type ListCommand struct {
	app    *App
	status string
	json   bool
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute lists the tasks matching the joined arguments and the status flag
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	entries, err := selectEntries(c.app, args, c.status)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	if c.json {
		return c.app.errorHandler.Handle("list tasks", export.Export(c.app.out, string(export.FormatJSON), entryTasks(entries)))
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.app.out, "No tasks found")
		return nil
	}

	c.printTable(entries)
	return nil
}

// printTable prints one row per task: position, title, truncated description,
// due date, status and the short ID accepted by the other commands.
func (c *ListCommand) printTable(entries []store.Entry) {
	display := c.app.config.Display
	today := domain.DateOf(timeNow())

	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tDESCRIPTION\tDUE\tSTATUS\tID")
	for _, entry := range entries {
		task := entry.Task
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			entry.Position(),
			task.Title,
			orDash(domain.Truncate(firstLine(task.Description), display.DescriptionWidth)),
			formatDue(task, display, today),
			task.StatusLabel(),
			task.ShortID(),
		)
	}
	w.Flush()

	completed := 0
	for _, entry := range entries {
		if entry.Task.Completed {
			completed++
		}
	}
	fmt.Fprintf(c.app.out, "\n%s, %d completed\n", english.Plural(len(entries), "task", ""), completed)
}

// selectEntries applies the search words and status flag shared by list and export
func selectEntries(app *App, args []string, status string) ([]store.Entry, error) {
	filter, err := domain.ParseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	return app.service.ListTasks(strings.Join(args, " "), filter), nil
}

func entryTasks(entries []store.Entry) []domain.Task {
	tasks := make([]domain.Task, len(entries))
	for i, entry := range entries {
		tasks[i] = entry.Task
	}
	return tasks
}
