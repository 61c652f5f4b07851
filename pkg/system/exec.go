package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"regr/pkg/runner"

	"github.com/google/uuid"
)

// LiveProcessRunner spawns subjects on the live system.
type LiveProcessRunner struct {
	Timeout   time.Duration // wall-clock bound per run; zero disables it
	MaxOutput int           // per-stream capture cap in bytes; zero disables it
}

// Run executes inv and captures both output streams and the exit code.
func (r *LiveProcessRunner) Run(ctx context.Context, inv runner.Invocation) (*runner.Result, error) {
	if inv.Path == "" {
		return nil, runner.ErrEmptyPath
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	// A grandchild holding our pipes open must not stall Wait past the kill.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	outW := &limitWriter{buf: &stdout, limit: r.MaxOutput}
	errW := &limitWriter{buf: &stderr, limit: r.MaxOutput}
	cmd.Stdout = outW
	cmd.Stderr = errW

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && r.Timeout > 0 {
			return nil, fmt.Errorf("%w after %s: %s", runner.ErrTimeout, r.Timeout, inv.Path)
		}
		return nil, fmt.Errorf("running %s: %w", inv.Path, ctxErr)
	}

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// Binary not found, not executable, or similar.
			return nil, fmt.Errorf("executing %s: %w", inv.Path, runErr)
		}
		exitCode = exitErr.ExitCode()
	}

	return &runner.Result{
		RunID:           uuid.New().String(),
		ExitCode:        exitCode,
		Stdout:          stdout.Bytes(),
		Stderr:          stderr.Bytes(),
		StdoutTruncated: outW.dropped,
		StderrTruncated: errW.dropped,
		Duration:        elapsed,
	}, nil
}

// limitWriter writes up to limit bytes to buf and discards the rest,
// recording that it did. A non-positive limit keeps everything.
type limitWriter struct {
	buf     *bytes.Buffer
	limit   int
	dropped bool
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.limit <= 0 {
		return w.buf.Write(p)
	}
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		w.dropped = w.dropped || len(p) > 0
		return len(p), nil
	}
	if len(p) > remaining {
		w.dropped = true
		// Report all bytes as consumed so the copy goroutine keeps draining.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
