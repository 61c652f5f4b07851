package model

import (
	"fmt"
	"strings"
)

// ExpectedOutcome is what a scenario expects one subject run to look like.
// A nil Stdout or Stderr means that stream is not checked.
type ExpectedOutcome struct {
	Arguments []string
	ExitCode  int
	Stdout    *string
	Stderr    *string
}

// Expect builds an outcome expecting exitCode after running with args.
func Expect(exitCode int, args ...string) ExpectedOutcome {
	return ExpectedOutcome{
		Arguments: append([]string(nil), args...),
		ExitCode:  exitCode,
	}
}

// WithStdout returns a copy of o that checks stdout against s.
func (o ExpectedOutcome) WithStdout(s string) ExpectedOutcome {
	o.Stdout = &s
	return o
}

// WithStderr returns a copy of o that checks stderr against s.
func (o ExpectedOutcome) WithStderr(s string) ExpectedOutcome {
	o.Stderr = &s
	return o
}

// Validate reports outcomes that no process could ever satisfy.
func (o ExpectedOutcome) Validate() ValidationErrors {
	var errs ValidationErrors

	if o.ExitCode < 0 || o.ExitCode > 255 {
		errs = append(errs, ValidationError{
			Field:   "exit_code",
			Message: fmt.Sprintf("must be between 0 and 255, got %d", o.ExitCode),
		})
	}

	for i, arg := range o.Arguments {
		if strings.ContainsRune(arg, 0) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("arguments[%d]", i),
				Message: "contains a NUL byte",
			})
		}
	}

	return errs
}

// String renders the outcome for log lines.
func (o ExpectedOutcome) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "args=%q exit=%d", o.Arguments, o.ExitCode)
	if o.Stdout != nil {
		fmt.Fprintf(&sb, " stdout=%q", *o.Stdout)
	}
	if o.Stderr != nil {
		fmt.Fprintf(&sb, " stderr=%q", *o.Stderr)
	}
	return sb.String()
}
