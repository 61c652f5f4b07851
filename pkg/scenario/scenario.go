// Package scenario holds self-contained regression cases, each asserting a
// subject's observable behavior under specific arguments.
package scenario

import (
	"context"

	"regr/pkg/harness"
)

// Scenario is one regression case. Run returns nil when the subject behaved
// as expected; any other result means the scenario failed.
type Scenario interface {
	Name() string
	Run(ctx context.Context, h harness.TestHarness) error
}

// Func adapts a plain function to the Scenario interface.
type Func struct {
	ID string
	Fn func(ctx context.Context, h harness.TestHarness) error
}

func (f Func) Name() string { return f.ID }

func (f Func) Run(ctx context.Context, h harness.TestHarness) error {
	return f.Fn(ctx, h)
}
