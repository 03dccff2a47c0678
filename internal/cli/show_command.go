package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute prints every field of the referenced task
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("task", args, "expected exactly one task position or ID")
	}

	entry, err := c.app.service.GetTask(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("show task", err)
	}
	task := entry.Task

	w := tabwriter.NewWriter(c.app.out, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "Position:\t%d\n", entry.Position())
	fmt.Fprintf(w, "ID:\t%s\n", task.ID)
	fmt.Fprintf(w, "Title:\t%s\n", task.Title)
	fmt.Fprintf(w, "Due:\t%s\n", formatDue(task, c.app.config.Display, domain.DateOf(timeNow())))
	fmt.Fprintf(w, "Status:\t%s\n", task.StatusLabel())
	w.Flush()

	if task.Description != "" {
		fmt.Fprintf(c.app.out, "\n%s\n", task.Description)
	}
	return nil
}
