// Package diff compares a subject's observed behavior with what a scenario
// expected and describes every divergence.
package diff

import (
	"fmt"
	"strconv"
	"strings"

	"regr/pkg/model"
	"regr/pkg/runner"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Field names one observable aspect of a subject run.
type Field string

const (
	FieldExitCode Field = "exit code"
	FieldStdout   Field = "stdout"
	FieldStderr   Field = "stderr"
)

// Mismatch is a single diverging field.
type Mismatch struct {
	Field     Field
	Expected  string
	Actual    string
	Truncated bool // actual output exceeded the capture cap
}

// Diff renders an inline diff of Expected against Actual, marking removed
// text as [-...-] and added text as {+...+}.
func (m Mismatch) Diff() string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(m.Expected, m.Actual, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		}
	}
	return sb.String()
}

// MismatchError reports that a subject run diverged from its expected
// outcome. It lists every diverging field, not just the first.
type MismatchError struct {
	Subject    string
	Arguments  []string
	RunID      string
	Mismatches []Mismatch
}

func (e *MismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %q: ", e.Subject, e.Arguments)
	if len(e.Mismatches) == 1 {
		sb.WriteString("1 mismatch")
	} else {
		fmt.Fprintf(&sb, "%d mismatches", len(e.Mismatches))
	}
	for _, m := range e.Mismatches {
		if m.Field == FieldExitCode {
			fmt.Fprintf(&sb, "\n  %s: expected %s, got %s", m.Field, m.Expected, m.Actual)
			continue
		}
		fmt.Fprintf(&sb, "\n  %s: expected %q, got %q", m.Field, m.Expected, m.Actual)
		if m.Truncated {
			sb.WriteString(" (output exceeded capture limit, shown truncated)")
		}
		fmt.Fprintf(&sb, "\n    diff: %q", m.Diff())
	}
	return sb.String()
}

// Has reports whether field diverged.
func (e *MismatchError) Has(field Field) bool {
	for _, m := range e.Mismatches {
		if m.Field == field {
			return true
		}
	}
	return false
}

// Fields lists the diverging fields in check order.
func (e *MismatchError) Fields() []Field {
	fields := make([]Field, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		fields = append(fields, m.Field)
	}
	return fields
}

// Compare checks actual against expected. The exit code is always checked;
// stdout and stderr only when expected sets them. A checked stream that was
// truncated never matches, since its full content is unknown. It returns nil
// or a *MismatchError.
func Compare(subject string, expected model.ExpectedOutcome, actual *runner.Result) error {
	var mismatches []Mismatch

	if actual.ExitCode != expected.ExitCode {
		mismatches = append(mismatches, Mismatch{
			Field:    FieldExitCode,
			Expected: strconv.Itoa(expected.ExitCode),
			Actual:   strconv.Itoa(actual.ExitCode),
		})
	}
	if m, ok := compareStream(FieldStdout, expected.Stdout, actual.Stdout, actual.StdoutTruncated); !ok {
		mismatches = append(mismatches, m)
	}
	if m, ok := compareStream(FieldStderr, expected.Stderr, actual.Stderr, actual.StderrTruncated); !ok {
		mismatches = append(mismatches, m)
	}

	if len(mismatches) == 0 {
		return nil
	}
	return &MismatchError{
		Subject:    subject,
		Arguments:  expected.Arguments,
		RunID:      actual.RunID,
		Mismatches: mismatches,
	}
}

func compareStream(field Field, expected *string, actual []byte, truncated bool) (Mismatch, bool) {
	if expected == nil || (!truncated && *expected == string(actual)) {
		return Mismatch{}, true
	}
	return Mismatch{
		Field:     field,
		Expected:  *expected,
		Actual:    string(actual),
		Truncated: truncated,
	}, false
}
