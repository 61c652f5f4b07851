package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"regr/pkg/model"
	"regr/pkg/system"
	"regr/pkg/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFs(t *testing.T) {
	t.Helper()
	prev := system.AppFs
	system.AppFs = test.SetupMockFilesystem(t)
	t.Cleanup(func() { system.AppFs = prev })
}

func TestLoadConfig(t *testing.T) {
	logger := test.NewMockLogger(slog.LevelDebug)

	t.Run("successfully loads a valid config", func(t *testing.T) {
		setupFs(t)
		test.CreateTestFile(t, system.AppFs, "/etc/regr.yaml", test.SampleConfigYAML())

		cfg, err := LoadConfig("/etc/regr.yaml", logger)
		require.NoError(t, err)

		assert.Equal(t, "/opt/busybus/bin", cfg.Dir())
		assert.Equal(t, "bbus-", cfg.Prefix())
		assert.Equal(t, 30*time.Second, cfg.Timeout())
		assert.Equal(t, 4096, cfg.MaxOutputBytes())
		assert.Equal(t, []string{"BBUS_SOCKET=/tmp/bbus.sock"}, cfg.Env)
		assert.Equal(t, slog.LevelDebug, cfg.Level())
		assert.True(t, logger.HasMessage("Loaded harness config"))
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		setupFs(t)

		cfg, err := LoadConfig("/nowhere/regr.yaml", logger)
		require.NoError(t, err)

		assert.Equal(t, DefaultSubjectDir, cfg.Dir())
		assert.Equal(t, DefaultProgramPrefix, cfg.Prefix())
		assert.Equal(t, DefaultTimeout, cfg.Timeout())
		assert.Equal(t, DefaultMaxOutput, cfg.MaxOutputBytes())
		assert.Equal(t, slog.LevelInfo, cfg.Level())
	})

	t.Run("returns an error for malformed YAML", func(t *testing.T) {
		setupFs(t)
		test.CreateTestFile(t, system.AppFs, "/regr.yaml", "timeout: [10s\n")

		_, err := LoadConfig("/regr.yaml", logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing /regr.yaml")
	})

	t.Run("returns validation errors", func(t *testing.T) {
		setupFs(t)
		test.CreateTestFile(t, system.AppFs, "/regr.yaml", "timeout: soon\nmax_output: -1\n")

		_, err := LoadConfig("/regr.yaml", logger)

		var verrs model.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 2)
	})

	t.Run("explicit empty prefix disables prefixing", func(t *testing.T) {
		setupFs(t)
		test.CreateTestFile(t, system.AppFs, "/regr.yaml", "program_prefix: \"\"\n")

		cfg, err := LoadConfig("/regr.yaml", logger)
		require.NoError(t, err)
		assert.Equal(t, "", cfg.Prefix())
	})
}

func TestConfig_Validate(t *testing.T) {
	prefix := "bin/bbus-"
	tests := []struct {
		name   string
		cfg    Config
		fields []string
	}{
		{"zero value", Config{}, nil},
		{"valid", Config{RawTimeout: "1m", RawMaxOutput: 10, Env: []string{"A=b", "EMPTY="}, LogLevel: "warn"}, nil},
		{"bad duration", Config{RawTimeout: "ten seconds"}, []string{"timeout"}},
		{"non-positive duration", Config{RawTimeout: "0s"}, []string{"timeout"}},
		{"negative max output", Config{RawMaxOutput: -5}, []string{"max_output"}},
		{"prefix with separator", Config{ProgramPrefix: &prefix}, []string{"program_prefix"}},
		{"env without equals", Config{Env: []string{"A=b", "NOPE", "=x"}}, []string{"env[1]", "env[2]"}},
		{"bad log level", Config{LogLevel: "loud"}, []string{"log_level"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields []string
			for _, e := range tt.cfg.Validate() {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestConfig_TimeoutFallsBackOnGarbage(t *testing.T) {
	cfg := &Config{RawTimeout: "garbage"}
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
}
