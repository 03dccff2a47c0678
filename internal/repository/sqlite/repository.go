package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"tasklist/internal/errors"
	"tasklist/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const selectColumns = `id, position, title, description, due_date, completed`

// Repository defines the interface for database operations.
// The task list is stored as a whole; positions are rewritten on every save.
type Repository interface {
	LoadTasks(ctx context.Context) ([]*TaskRow, error)
	ReplaceTasks(ctx context.Context, rows []*TaskRow) error
	Path() string
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// New creates a new SQLite repository instance and applies pending migrations.
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, errors.NewDatabaseError("create database directory", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (r *SQLiteRepository) Path() string {
	return r.path
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// LoadTasks returns every task ordered by position.
func (r *SQLiteRepository) LoadTasks(ctx context.Context) ([]*TaskRow, error) {
	query := `SELECT ` + selectColumns + ` FROM tasks ORDER BY position`
	return QueryMultiple(ctx, r.db, query, ScanTaskRows, "tasks")
}

// ReplaceTasks atomically replaces the stored list with rows.
// Each row's position is set from its index in the slice.
func (r *SQLiteRepository) ReplaceTasks(ctx context.Context, rows []*TaskRow) error {
	return WithTransaction(ctx, r.db, "replace tasks", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, title, description, due_date, completed)
		VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, row := range rows {
			row.Position = i
			if _, err := stmt.ExecContext(ctx, row.ID, row.Position, row.Title, row.Description, row.DueDate, row.Completed); err != nil {
				return err
			}
		}
		return nil
	})
}
