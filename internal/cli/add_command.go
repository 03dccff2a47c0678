package cli

import (
	"context"
	"strings"

	"tasklist/internal/services"
)

// AddCommand handles the add command
type AddCommand struct {
	app         *App
	description string
	due         string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute adds a task whose title is the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	input := services.TaskInput{
		Title:       strings.Join(args, " "),
		Description: c.description,
		DueDate:     c.due,
	}

	result, err := c.app.service.AddTask(ctx, input)
	c.app.printResult(result)
	return c.app.errorHandler.Handle("add task", err)
}
