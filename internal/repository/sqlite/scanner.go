package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTaskRow scans a single task from a database row.
// Columns are expected in the order id, position, title, description, due_date, completed.
func ScanTaskRow(scanner Scanner) (*TaskRow, error) {
	row := &TaskRow{}
	err := scanner.Scan(
		&row.ID,
		&row.Position,
		&row.Title,
		&row.Description,
		&row.DueDate,
		&row.Completed,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ScanTaskRows scans multiple tasks from database rows
func ScanTaskRows(rows Rows) ([]*TaskRow, error) {
	var tasks []*TaskRow
	for rows.Next() {
		task, err := ScanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
