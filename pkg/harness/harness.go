// Package harness spawns subject programs and checks their observable
// behavior against a scenario's expectations.
package harness

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"regr/pkg/config"
	"regr/pkg/diff"
	"regr/pkg/log"
	"regr/pkg/model"
	"regr/pkg/runner"
	"regr/pkg/system"
)

// TestHarness is what scenarios are written against: run a short-named
// program and expect a given outcome.
type TestHarness interface {
	CallExpect(ctx context.Context, program string, expected model.ExpectedOutcome) error
}

// Harness implements TestHarness on top of a runner.ProcessRunner.
// It holds no per-run state and is safe for concurrent use when its runner is.
type Harness struct {
	cfg    *config.Config
	runner runner.ProcessRunner
	logger log.Logger
}

// New returns a harness using r to spawn subjects. A nil cfg or logger
// falls back to the defaults.
func New(cfg *config.Config, r runner.ProcessRunner, logger log.Logger) *Harness {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.NewDiscardLogger()
	}
	return &Harness{cfg: cfg, runner: r, logger: logger}
}

// NewLive returns a harness that spawns real processes bounded by the
// timeout and output cap in cfg.
func NewLive(cfg *config.Config, logger log.Logger) *Harness {
	if cfg == nil {
		cfg = config.Default()
	}
	return New(cfg, &system.LiveProcessRunner{
		Timeout:   cfg.Timeout(),
		MaxOutput: cfg.MaxOutputBytes(),
	}, logger)
}

// CallExpect runs the subject named program and compares it with expected.
// The name is prefixed ("call" becomes "bbus-call") and invoked as
// "./bbus-call" from the subject directory, so the subject sees the same
// argv[0] it would when run by hand from there.
func (h *Harness) CallExpect(ctx context.Context, program string, expected model.ExpectedOutcome) error {
	if program == "" || strings.ContainsRune(program, '/') {
		return fmt.Errorf("invalid program name %q", program)
	}
	return h.run(ctx, runner.Invocation{
		Path: "./" + h.cfg.Prefix() + program,
		Args: expected.Arguments,
		Dir:  h.cfg.Dir(),
		Env:  h.cfg.Env,
	}, expected)
}

// Run spawns the executable at subjectPath and compares it with expected.
// A bare file name refers to the working directory, never to $PATH.
func (h *Harness) Run(ctx context.Context, subjectPath string, expected model.ExpectedOutcome) error {
	path := subjectPath
	if path != "" && !strings.ContainsRune(path, filepath.Separator) {
		path = "." + string(filepath.Separator) + path
	}
	return h.run(ctx, runner.Invocation{
		Path: path,
		Args: expected.Arguments,
		Env:  h.cfg.Env,
	}, expected)
}

func (h *Harness) run(ctx context.Context, inv runner.Invocation, expected model.ExpectedOutcome) error {
	if errs := expected.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid expectation for %s: %w", inv.Path, errs)
	}

	h.logger.Debug("Spawning subject", "path", inv.Path, "dir", inv.Dir, "expected", expected.String())
	res, err := h.runner.Run(ctx, inv)
	if err != nil {
		if errors.Is(err, runner.ErrTimeout) {
			h.logger.Warn("Subject timed out", "path", inv.Path, "timeout", h.cfg.Timeout())
		} else {
			h.logger.Error("Failed to run subject", "path", inv.Path, "error", err)
		}
		return err
	}

	if err := diff.Compare(inv.Path, expected, res); err != nil {
		var mismatch *diff.MismatchError
		if errors.As(err, &mismatch) {
			h.logger.Warn("Subject diverged from expectation",
				"path", inv.Path,
				"run_id", res.RunID,
				"fields", mismatch.Fields())
		}
		return err
	}

	h.logger.Info("Subject matched expectation",
		"path", inv.Path,
		"run_id", res.RunID,
		"exit_code", res.ExitCode,
		"duration", res.Duration)
	return nil
}
