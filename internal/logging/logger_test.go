package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/config"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv(DebugEnv, "")
	assert.False(t, DebugEnabled(), "empty TASKS_DEBUG does not enable debug")

	t.Setenv(DebugEnv, "1")
	assert.True(t, DebugEnabled())
}

func TestLevel(t *testing.T) {
	t.Setenv(DebugEnv, "")

	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		expected zerolog.Level
	}{
		{name: "configured", cfg: config.LoggingConfig{Level: "info"}, expected: zerolog.InfoLevel},
		{name: "upper case", cfg: config.LoggingConfig{Level: "ERROR"}, expected: zerolog.ErrorLevel},
		{name: "invalid falls back to warn", cfg: config.LoggingConfig{Level: "chatty"}, expected: zerolog.WarnLevel},
		{name: "empty falls back to warn", cfg: config.LoggingConfig{}, expected: zerolog.WarnLevel},
		{name: "verbose forces debug", cfg: config.LoggingConfig{Level: "error", Verbose: true}, expected: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Level(tt.cfg))
		})
	}
}

func TestLevel_DebugEnv(t *testing.T) {
	t.Setenv(DebugEnv, "true")
	assert.Equal(t, zerolog.DebugLevel, Level(config.LoggingConfig{Level: "error"}))
}

func TestNew_JSON(t *testing.T) {
	t.Setenv(DebugEnv, "")
	var buf bytes.Buffer
	logger := New(&buf, config.LoggingConfig{Level: "info", Format: "json"})

	logger.Debug().Msg("hidden")
	logger.Info().Str("path", "tasks.json").Msg("tasks loaded")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "tasks loaded", entry["message"])
	assert.Equal(t, "tasks.json", entry["path"])
}

func TestNew_Console(t *testing.T) {
	t.Setenv(DebugEnv, "")
	var buf bytes.Buffer
	logger := New(&buf, config.LoggingConfig{Level: "warn", Format: "console"})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("disk almost full")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "disk almost full")
}
