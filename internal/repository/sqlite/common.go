package sqlite

import (
	"context"
	"database/sql"

	"tasklist/internal/errors"
)

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	if err == context.DeadlineExceeded || err == context.Canceled {
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewDatabaseError(operation, err)
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}

// WithTransaction runs fn inside a transaction, committing on success and rolling back otherwise.
func WithTransaction(ctx context.Context, db *sql.DB, operation string, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin "+operation, err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		if errors.IsAppError(err) {
			return err
		}
		return HandleDatabaseError(operation, err)
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit "+operation, err)
	}
	return nil
}
