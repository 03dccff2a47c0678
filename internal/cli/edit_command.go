package cli

import (
	"context"

	"tasklist/internal/errors"
	"tasklist/internal/services"
)

// EditCommand handles the edit command
type EditCommand struct {
	app *App

	title       string
	description string
	due         string
	clearDue    bool
	completed   bool

	// changed reports whether a flag was given on the command line
	changed func(name string) bool
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{
		app:     app,
		changed: func(string) bool { return false },
	}
}

// Execute applies the given flags to the referenced task
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("task", args, "expected exactly one task position or ID")
	}

	patch := c.patch()
	if patch.IsEmpty() {
		return c.app.errorHandler.Handle("edit task",
			errors.NewInvalidInputError("flags", "", "nothing to change: use --title, --description, --due, --clear-due or --completed"))
	}

	result, err := c.app.service.EditTask(ctx, args[0], patch)
	c.app.printResult(result)
	return c.app.errorHandler.Handle("edit task", err)
}

func (c *EditCommand) patch() services.TaskPatch {
	var patch services.TaskPatch
	if c.changed("title") {
		patch.Title = &c.title
	}
	if c.changed("description") {
		patch.Description = &c.description
	}
	if c.changed("due") {
		patch.DueDate = &c.due
	}
	if c.changed("completed") {
		patch.Completed = &c.completed
	}
	patch.ClearDueDate = c.clearDue
	return patch
}
