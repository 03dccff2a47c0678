package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/errors"
)

func TestStatusFilter_Accepts(t *testing.T) {
	open := Task{Title: "open"}
	done := Task{Title: "done", Completed: true}

	assert.True(t, StatusAll.Accepts(open))
	assert.True(t, StatusAll.Accepts(done))
	assert.True(t, StatusIncomplete.Accepts(open))
	assert.False(t, StatusIncomplete.Accepts(done))
	assert.False(t, StatusCompleted.Accepts(open))
	assert.True(t, StatusCompleted.Accepts(done))
}

func TestStatusFilter_Next(t *testing.T) {
	assert.Equal(t, StatusIncomplete, StatusAll.Next())
	assert.Equal(t, StatusCompleted, StatusIncomplete.Next())
	assert.Equal(t, StatusAll, StatusCompleted.Next())
}

func TestStatusFilter_Names(t *testing.T) {
	assert.Equal(t, "all", StatusAll.String())
	assert.Equal(t, "incomplete", StatusIncomplete.String())
	assert.Equal(t, "completed", StatusCompleted.String())

	assert.Equal(t, "All", StatusAll.Label())
	assert.Equal(t, "In progress", StatusIncomplete.Label())
	assert.Equal(t, "Completed", StatusCompleted.Label())
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		input    string
		expected StatusFilter
	}{
		{"", StatusAll},
		{"all", StatusAll},
		{"ALL", StatusAll},
		{"incomplete", StatusIncomplete},
		{"in-progress", StatusIncomplete},
		{"pending", StatusIncomplete},
		{"completed", StatusCompleted},
		{" done ", StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseStatusFilter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	_, err := ParseStatusFilter("archived")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}
