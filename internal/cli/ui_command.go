package cli

import (
	"context"
)

// UICommand handles the ui command
type UICommand struct {
	app *App
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	return &UICommand{app: app}
}

// Interactive reports whether the command waits on the user
func (c *UICommand) Interactive() bool {
	return true
}

// Execute runs the interactive screen until the user quits
func (c *UICommand) Execute(ctx context.Context, args []string) error {
	err := c.app.runUI(ctx, c.app.service, c.app.config, c.app.loadMessage)
	return c.app.errorHandler.Handle("run interactive mode", err)
}
