package sqlite

import "database/sql"

// TaskRow represents a row of the tasks table.
// Position is the 0-based place of the task in the list.
type TaskRow struct {
	ID          string
	Position    int
	Title       string
	Description string
	DueDate     sql.NullString
	Completed   bool
}
