// Package config loads the optional YAML file that tells the harness where
// subjects live and how long they may run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"regr/pkg/log"
	"regr/pkg/model"
	"regr/pkg/system"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Default values for harness configuration.
const (
	DefaultSubjectDir    = "."
	DefaultProgramPrefix = "bbus-"
	DefaultTimeout       = 10 * time.Second
	DefaultMaxOutput     = 1 << 20 // 1 MB
)

// Config holds the parsed harness configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	SubjectDir    string   `yaml:"subject_dir"`
	ProgramPrefix *string  `yaml:"program_prefix"` // nil means DefaultProgramPrefix
	RawTimeout    string   `yaml:"timeout"`        // e.g. "10s", "1m"
	RawMaxOutput  int      `yaml:"max_output"`     // bytes
	Env           []string `yaml:"env"`            // KEY=VALUE entries
	LogLevel      string   `yaml:"log_level"`
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	return &Config{}
}

// Dir returns the directory subjects are resolved against and run from.
func (c *Config) Dir() string {
	if c.SubjectDir != "" {
		return c.SubjectDir
	}
	return DefaultSubjectDir
}

// Prefix returns the string prepended to short program names.
// An explicit empty prefix in the file disables prefixing.
func (c *Config) Prefix() string {
	if c.ProgramPrefix != nil {
		return *c.ProgramPrefix
	}
	return DefaultProgramPrefix
}

// Timeout returns the configured timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultTimeout
}

// MaxOutputBytes returns the configured max output size or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// Level returns the configured log level, or info when unset or invalid.
func (c *Config) Level() slog.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks the raw values. Unset fields are always valid.
func (c *Config) Validate() model.ValidationErrors {
	var errs model.ValidationErrors

	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		switch {
		case err != nil:
			errs = append(errs, model.ValidationError{Field: "timeout", Message: fmt.Sprintf("invalid duration %q", c.RawTimeout)})
		case d <= 0:
			errs = append(errs, model.ValidationError{Field: "timeout", Message: "must be positive"})
		}
	}

	if c.RawMaxOutput < 0 {
		errs = append(errs, model.ValidationError{Field: "max_output", Message: "must not be negative"})
	}

	if c.ProgramPrefix != nil && strings.ContainsRune(*c.ProgramPrefix, '/') {
		errs = append(errs, model.ValidationError{Field: "program_prefix", Message: "must not contain a path separator"})
	}

	for i, kv := range c.Env {
		if k, _, ok := strings.Cut(kv, "="); !ok || k == "" {
			errs = append(errs, model.ValidationError{Field: fmt.Sprintf("env[%d]", i), Message: fmt.Sprintf("expected KEY=VALUE, got %q", kv)})
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, model.ValidationError{Field: "log_level", Message: err.Error()})
	}

	return errs
}

// LoadConfig reads filename from system.AppFs. A missing file yields the
// defaults; a malformed or invalid one is an error.
func LoadConfig(filename string, logger log.Logger) (*Config, error) {
	data, err := afero.ReadFile(system.AppFs, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No harness config found, using defaults", "path", filename)
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}

	logger.Debug("Loaded harness config",
		"path", filename,
		"subject_dir", cfg.Dir(),
		"program_prefix", cfg.Prefix(),
		"timeout", cfg.Timeout())
	return cfg, nil
}
