package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" Warn ", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestSetupLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "skychart.log")

	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "WARN"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("invalid time", "input", "2025-13-40 25:99")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"invalid time"`)
	assert.Contains(t, string(data), `"input":"2025-13-40 25:99"`)
}

func TestSetupLoggerRequiresFile(t *testing.T) {
	_, _, err := SetupLogger(&LoggingConfig{})
	assert.Error(t, err)
}
