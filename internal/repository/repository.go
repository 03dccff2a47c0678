// Package repository selects and adapts the task list storage backends.
package repository

import (
	"context"

	"github.com/rs/zerolog"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/repository/jsonfile"
	"tasklist/internal/repository/sqlite"
)

// Repository persists the whole ordered task list.
type Repository interface {
	// Load returns the stored tasks in order; a store that does not exist yet is empty.
	Load(ctx context.Context) ([]domain.Task, error)
	// Save replaces the stored list with tasks.
	Save(ctx context.Context, tasks []domain.Task) error
	// Path returns the storage location.
	Path() string
	Close() error
}

// Open creates the repository for the configured backend.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Repository, error) {
	path := cfg.StoragePath()
	logger = logger.With().Str("backend", cfg.Storage.Backend).Logger()

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlite.New(ctx, path)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("opened sqlite database")
		return NewSQLite(db, logger), nil
	case config.BackendJSON, "":
		return jsonfile.New(path,
			jsonfile.WithDirMode(cfg.DirMode()),
			jsonfile.WithFileMode(cfg.FileMode()),
			jsonfile.WithLogger(logger),
		), nil
	default:
		return nil, errors.NewInvalidInputError("backend", cfg.Storage.Backend, "expected json or sqlite")
	}
}

// SQLite adapts a sqlite.Repository to Repository.
type SQLite struct {
	db     sqlite.Repository
	mapper *domain.Mapper
	logger zerolog.Logger
}

// NewSQLite wraps db.
func NewSQLite(db sqlite.Repository, logger zerolog.Logger) *SQLite {
	return &SQLite{
		db:     db,
		mapper: domain.NewMapper(),
		logger: logger,
	}
}

// Load reads all rows ordered by position.
func (r *SQLite) Load(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.LoadTasks(ctx)
	if err != nil {
		return nil, errors.NewLoadError(r.db.Path(), err)
	}

	tasks, err := r.mapper.Task.FromDatabaseSlice(rows)
	if err != nil {
		return nil, errors.NewLoadError(r.db.Path(), err)
	}

	r.logger.Debug().Int("count", len(tasks)).Msg("loaded tasks")
	return tasks, nil
}

// Save rewrites the table in one transaction.
func (r *SQLite) Save(ctx context.Context, tasks []domain.Task) error {
	if err := r.db.ReplaceTasks(ctx, r.mapper.Task.ToDatabaseSlice(tasks)); err != nil {
		return errors.NewSaveError(r.db.Path(), err)
	}
	r.logger.Debug().Int("count", len(tasks)).Msg("saved tasks")
	return nil
}

// Path returns the database file path.
func (r *SQLite) Path() string {
	return r.db.Path()
}

// Close closes the database.
func (r *SQLite) Close() error {
	return r.db.Close()
}
