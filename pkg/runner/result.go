package runner

import "time"

// Result holds the observable behavior of one subject run.
type Result struct {
	RunID           string        // unique identifier for this run
	ExitCode        int           // process exit code
	Stdout          []byte        // captured stdout (may be truncated)
	Stderr          []byte        // captured stderr (may be truncated)
	StdoutTruncated bool          // stdout bytes were dropped at the size cap
	StderrTruncated bool          // stderr bytes were dropped at the size cap
	Duration        time.Duration // wall-clock time from start to exit
}
