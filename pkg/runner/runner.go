// Package runner defines the process execution contract shared by the live
// runner in pkg/system and the mocks in pkg/test.
// It exists to break import cycles between those packages and the harness.
package runner

import (
	"context"
	"errors"
)

var (
	// ErrTimeout is returned when a subject outlives its wall-clock bound.
	ErrTimeout = errors.New("subject timed out")
	// ErrEmptyPath is returned for an Invocation without a program path.
	ErrEmptyPath = errors.New("empty subject path")
)

// Invocation describes one child process to spawn.
type Invocation struct {
	Path string   // program path; relative paths resolve against Dir
	Args []string // arguments, excluding argv[0]
	Dir  string   // working directory; empty means the current one
	Env  []string // extra KEY=VALUE entries appended to the parent environment
}

// ProcessRunner spawns a subject and waits for it to exit.
// A non-zero exit status is reported through Result, not as an error.
type ProcessRunner interface {
	Run(ctx context.Context, inv Invocation) (*Result, error)
}
