package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawala-app/hawala/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected config.LogLevel
	}{
		{"off", config.LogLevelOff},
		{"none", config.LogLevelOff},
		{"error", config.LogLevelError},
		{"ERROR", config.LogLevelError},
		{"debug", config.LogLevelDebug},
		{" debug ", config.LogLevelDebug},
		{"unknown", config.LogLevelError},
		{"", config.LogLevelError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, config.ParseLogLevel(tt.input), "input %q", tt.input)
	}
}

func TestLoggerWritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hawala.log")

	logger, err := config.NewLogger(config.LogLevelDebug, path)
	require.NoError(t, err)

	logger.Error("decode failed: %s", "CHECKSUM_MISMATCH")
	logger.Debug("kdf took %dms", 42)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path) // #nosec G304 -- test temp path
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ERROR] decode failed: CHECKSUM_MISMATCH")
	assert.Contains(t, string(data), "[DEBUG] kdf took 42ms")
}

func TestLoggerLevelFiltering(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hawala.log")

	logger, err := config.NewLogger(config.LogLevelError, path)
	require.NoError(t, err)

	logger.Debug("suppressed")
	logger.Error("kept")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path) // #nosec G304 -- test temp path
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "kept")
}

func TestNullLogger(t *testing.T) {
	t.Parallel()
	logger := config.NullLogger()
	// Must not panic without a backing file.
	logger.Error("dropped")
	logger.Debug("dropped")
	assert.Equal(t, config.LogLevelOff, logger.Level())
	require.NoError(t, logger.Close())
}

func TestLoggerOffCreatesNoFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hawala.log")

	logger, err := config.NewLogger(config.LogLevelOff, path)
	require.NoError(t, err)
	logger.Error("dropped")
	require.NoError(t, logger.Close())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
