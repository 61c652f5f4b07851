package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.LevelInfo, &buf)

	assert.NotNil(t, logger)
	assert.NotNil(t, logger.logger)
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		log   func(l *SlogLogger)
		want  string
	}{
		{"debug", slog.LevelDebug, func(l *SlogLogger) { l.Debug("spawning subject", "program", "bbus-call") }, "spawning subject"},
		{"info", slog.LevelInfo, func(l *SlogLogger) { l.Info("scenario passed", "program", "bbus-call") }, "scenario passed"},
		{"warn", slog.LevelWarn, func(l *SlogLogger) { l.Warn("scenario failed", "program", "bbus-call") }, "scenario failed"},
		{"error", slog.LevelError, func(l *SlogLogger) { l.Error("subject missing", "program", "bbus-call") }, "subject missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewSlogLogger(tt.level, &buf))

			output := buf.String()
			assert.Contains(t, output, tt.want)
			assert.Contains(t, output, "program=bbus-call")
		})
	}
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.LevelWarn, &buf)

	logger.Debug("debug message") // should be filtered out
	logger.Info("info message")   // should be filtered out
	logger.Warn("warn message")   // should appear
	logger.Error("error message") // should appear

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.LevelInfo, &buf).With("scenario", "invalid_args")

	logger.Info("scenario passed")

	assert.Contains(t, buf.String(), "scenario=invalid_args")
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()

	assert.NotPanics(t, func() {
		logger.Error("dropped", "key", "value")
	})
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("verbose")
	assert.EqualError(t, err, "invalid log level: verbose")
}
