// Package jsonfile persists the task list as a JSON array in a single file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
)

// Default permissions
const (
	DefaultDirMode  os.FileMode = 0755
	DefaultFileMode os.FileMode = 0644
)

// Repository reads and writes the whole task list to one JSON file.
type Repository struct {
	path     string
	dirMode  os.FileMode
	fileMode os.FileMode
	logger   zerolog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithDirMode sets the permissions used when creating the parent directory.
func WithDirMode(mode os.FileMode) Option {
	return func(r *Repository) { r.dirMode = mode }
}

// WithFileMode sets the permissions of the written file.
func WithFileMode(mode os.FileMode) Option {
	return func(r *Repository) { r.fileMode = mode }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// New creates a repository for the file at path. The file need not exist.
func New(path string, opts ...Option) *Repository {
	r := &Repository{
		path:     path,
		dirMode:  DefaultDirMode,
		fileMode: DefaultFileMode,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the file path.
func (r *Repository) Path() string {
	return r.path
}

// Close is a no-op; files are not held open between calls.
func (r *Repository) Close() error {
	return nil
}

// Load reads the task list. A missing file is an empty list.
// Malformed JSON or an invalid record fails the whole load with a LoadError.
func (r *Repository) Load(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewLoadError(r.path, err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Debug().Str("path", r.path).Msg("task file does not exist, starting empty")
			return []domain.Task{}, nil
		}
		return nil, errors.NewLoadError(r.path, err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewLoadError(r.path,
			errors.NewFormatError("file", "expected a JSON array of task records", err))
	}

	tasks, err := domain.DeserializeAll(records)
	if err != nil {
		return nil, errors.NewLoadError(r.path, err)
	}

	r.logger.Debug().Str("path", r.path).Int("count", len(tasks)).Msg("loaded tasks")
	return tasks, nil
}

// Save writes the full task list. The data goes to a temporary file in the
// same directory which is synced and then renamed over the target, so the
// previous version is never left half-written.
func (r *Repository) Save(ctx context.Context, tasks []domain.Task) error {
	if err := ctx.Err(); err != nil {
		return errors.NewSaveError(r.path, err)
	}

	data, err := Encode(tasks)
	if err != nil {
		return errors.NewSaveError(r.path, err)
	}

	if err := writeFileAtomic(r.path, data, r.dirMode, r.fileMode); err != nil {
		return errors.NewSaveError(r.path, err)
	}

	r.logger.Debug().Str("path", r.path).Int("count", len(tasks)).Msg("saved tasks")
	return nil
}

// Encode renders tasks in the file format: a JSON array, two-space
// indentation, non-ASCII and HTML characters written as is.
func Encode(tasks []domain.Task) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(domain.SerializeAll(tasks)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte, dirMode, fileMode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
