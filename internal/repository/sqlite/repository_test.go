package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(context.Background(), filepath.Join(t.TempDir(), "data", "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleRows() []*TaskRow {
	return []*TaskRow{
		{ID: "a1", Title: "Buy milk", Description: "2 liters", DueDate: NullableString("2025-03-01")},
		{ID: "b2", Title: "Call mom", Completed: true},
		{ID: "c3", Title: "Write report", Description: "Q1"},
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.db")
	repo, err := New(context.Background(), path)
	require.NoError(t, err)
	defer repo.Close()

	assert.Equal(t, path, repo.Path())
	assert.FileExists(t, path)
}

func TestNew_InMemory(t *testing.T) {
	repo, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	defer repo.Close()

	rows, err := repo.LoadTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadTasks_Empty(t *testing.T) {
	repo := setupTestDB(t)

	rows, err := repo.LoadTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReplaceTasks_PreservesOrder(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceTasks(ctx, sampleRows()))

	rows, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "a1", rows[0].ID)
	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, "2025-03-01", StringFromNull(rows[0].DueDate))
	assert.Equal(t, "2 liters", rows[0].Description)

	assert.Equal(t, "b2", rows[1].ID)
	assert.True(t, rows[1].Completed)
	assert.False(t, rows[1].DueDate.Valid)

	assert.Equal(t, "c3", rows[2].ID)
	assert.Equal(t, 2, rows[2].Position)
}

func TestReplaceTasks_Overwrites(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceTasks(ctx, sampleRows()))

	reordered := []*TaskRow{
		{ID: "c3", Title: "Write report"},
		{ID: "a1", Title: "Buy milk"},
	}
	require.NoError(t, repo.ReplaceTasks(ctx, reordered))

	rows, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c3", rows[0].ID)
	assert.Equal(t, "a1", rows[1].ID)
}

func TestReplaceTasks_DuplicateIDRollsBack(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.ReplaceTasks(ctx, sampleRows()))

	err := repo.ReplaceTasks(ctx, []*TaskRow{
		{ID: "dup", Title: "one"},
		{ID: "dup", Title: "two"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))

	rows, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 3, "failed replace must leave the previous list intact")
}

func TestLoadTasks_CanceledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.LoadTasks(ctx)
	assert.Error(t, err)
}
