package test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"regr/pkg/log"
	"regr/pkg/runner"
)

// MockProcessRunner is a shared mock implementation of runner.ProcessRunner.
// It records every invocation and replays configured results by program path.
type MockProcessRunner struct {
	mu          sync.Mutex
	Invocations []runner.Invocation
	Results     map[string]*runner.Result // by Invocation.Path
	Errors      map[string]error          // by Invocation.Path
}

// NewMockProcessRunner creates a new MockProcessRunner with initialized maps.
func NewMockProcessRunner() *MockProcessRunner {
	return &MockProcessRunner{
		Results: make(map[string]*runner.Result),
		Errors:  make(map[string]error),
	}
}

// Run records inv and returns the configured error or result. Unconfigured
// paths exit 0 with no output.
func (r *MockProcessRunner) Run(ctx context.Context, inv runner.Invocation) (*runner.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Invocations = append(r.Invocations, inv)
	if err, ok := r.Errors[inv.Path]; ok {
		return nil, err
	}
	if res, ok := r.Results[inv.Path]; ok {
		cp := *res
		return &cp, nil
	}
	return &runner.Result{RunID: fmt.Sprintf("mock-%d", len(r.Invocations))}, nil
}

// SetResult configures what running path produces.
func (r *MockProcessRunner) SetResult(path string, exitCode int, stdout, stderr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Results[path] = &runner.Result{
		RunID:    "mock",
		ExitCode: exitCode,
		Stdout:   []byte(stdout),
		Stderr:   []byte(stderr),
	}
}

// SetError configures an error for path.
func (r *MockProcessRunner) SetError(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors[path] = err
}

// Calls returns how many invocations were recorded.
func (r *MockProcessRunner) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Invocations)
}

// MockLogger is a shared mock implementation of Logger for testing.
// It captures logged messages for verification.
type MockLogger struct {
	mu       sync.Mutex
	Messages []string
	Level    slog.Level
}

// NewMockLogger creates a new MockLogger with the specified level.
func NewMockLogger(level slog.Level) *MockLogger {
	return &MockLogger{
		Messages: []string{},
		Level:    level,
	}
}

func (l *MockLogger) Debug(msg string, args ...any) {
	if l.Level <= slog.LevelDebug {
		l.captureMessage("DEBUG", msg, args...)
	}
}

func (l *MockLogger) Info(msg string, args ...any) {
	if l.Level <= slog.LevelInfo {
		l.captureMessage("INFO", msg, args...)
	}
}

func (l *MockLogger) Warn(msg string, args ...any) {
	if l.Level <= slog.LevelWarn {
		l.captureMessage("WARN", msg, args...)
	}
}

func (l *MockLogger) Error(msg string, args ...any) {
	if l.Level <= slog.LevelError {
		l.captureMessage("ERROR", msg, args...)
	}
}

func (l *MockLogger) captureMessage(level, msg string, args ...any) {
	buf := &bytes.Buffer{}
	buf.WriteString(level)
	buf.WriteString(": ")
	buf.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(buf, " %v=%v", args[i], args[i+1])
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, buf.String())
}

// HasMessage checks if any captured message contains the given substring.
func (l *MockLogger) HasMessage(substring string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, msg := range l.Messages {
		if bytes.Contains([]byte(msg), []byte(substring)) {
			return true
		}
	}
	return false
}

// SlogLogger creates a real slog logger writing into the returned buffer
// (alternative to mock).
func SlogLogger(level slog.Level) (log.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return log.NewSlogLogger(level, buf), buf
}
