package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"tasklist/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	yes bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Interactive reports whether the command waits for confirmation
func (c *DeleteCommand) Interactive() bool {
	return !c.yes
}

// Execute deletes the referenced task after confirmation
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("task", args, "expected exactly one task position or ID")
	}

	entry, err := c.app.service.GetTask(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	if !c.yes && !c.confirm(entry.Task.Title) {
		fmt.Fprintln(c.app.out, "Delete cancelled.")
		return nil
	}

	// By ID: the confirmation may have taken a while
	result, err := c.app.service.DeleteTaskByID(ctx, entry.Task.ID)
	c.app.printResult(result)
	return c.app.errorHandler.Handle("delete task", err)
}

func (c *DeleteCommand) confirm(title string) bool {
	fmt.Fprintf(c.app.out, "Delete task %q? [y/N] ", title)

	reader := bufio.NewReader(c.app.in)
	answer, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
