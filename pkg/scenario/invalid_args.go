package scenario

import (
	"context"

	"regr/pkg/harness"
	"regr/pkg/model"
)

// InvalidArgs checks bbus-call's output when run without any arguments.
type InvalidArgs struct{}

func (InvalidArgs) Name() string { return "invalid_args" }

func (InvalidArgs) Run(ctx context.Context, h harness.TestHarness) error {
	return h.CallExpect(ctx, "call", model.Expect(1).
		WithStderr("./bbus-call: expected additional "+
			"parameters\ntry ./bbus-call --help"))
}
