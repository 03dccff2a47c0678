package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize/english"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/export"
)

// DefaultExportFormat is used when neither --format nor a known output extension is given
const DefaultExportFormat = export.FormatCSV

// ExportCommand handles the export command
type ExportCommand struct {
	app    *App
	format string
	output string
	status string

	changed func(name string) bool
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:     app,
		format:  string(DefaultExportFormat),
		changed: func(string) bool { return false },
	}
}

// Execute writes the matching tasks to stdout or the output file
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	format, err := export.ParseFormat(c.resolveFormat())
	if err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}

	entries, err := selectEntries(c.app, args, c.status)
	if err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}
	tasks := entryTasks(entries)

	if c.output == "" || c.output == "-" {
		return c.app.errorHandler.Handle("export tasks", export.Export(c.app.out, string(format), tasks))
	}

	if err := c.writeFile(string(format), tasks); err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}
	fmt.Fprintf(c.app.out, "Exported %s to %s\n", english.Plural(len(tasks), "task", ""), c.output)
	return nil
}

// resolveFormat infers the format from the output extension unless --format was given
func (c *ExportCommand) resolveFormat() string {
	if c.changed("format") || c.output == "" {
		return c.format
	}
	ext := filepath.Ext(c.output)
	if ext == "" {
		return c.format
	}
	if format, err := export.ParseFormat(ext[1:]); err == nil {
		return string(format)
	}
	return c.format
}

func (c *ExportCommand) writeFile(format string, tasks []domain.Task) (err error) {
	file, err := os.Create(c.output)
	if err != nil {
		return errors.NewSaveError(c.output, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errors.NewSaveError(c.output, closeErr)
		}
		if err != nil {
			os.Remove(c.output)
		}
	}()

	return export.Export(file, format, tasks)
}
