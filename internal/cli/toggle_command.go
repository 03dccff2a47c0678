package cli

import (
	"context"

	"tasklist/internal/errors"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips the completion state of each referenced task in turn
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("task", "", "expected a task position or ID")
	}

	// Resolve everything first so positions refer to the list as shown.
	// A task named twice is toggled once.
	ids := make([]string, 0, len(args))
	seen := make(map[string]bool, len(args))
	for _, ref := range args {
		entry, err := c.app.service.GetTask(ref)
		if err != nil {
			return c.app.errorHandler.Handle("toggle task", err)
		}
		if seen[entry.Task.ID] {
			continue
		}
		seen[entry.Task.ID] = true
		ids = append(ids, entry.Task.ID)
	}

	for _, id := range ids {
		result, err := c.app.service.ToggleTaskByID(ctx, id)
		c.app.printResult(result)
		if err != nil {
			return c.app.errorHandler.Handle("toggle task", err)
		}
	}
	return nil
}
