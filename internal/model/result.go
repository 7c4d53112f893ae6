package model

import "time"

// Outcome classifies a single invocation of the generation command.
type Outcome int

const (
	// Passed indicates the command exited zero.
	Passed Outcome = iota
	// Expected indicates a known, acceptable failure.
	Expected
	// Unexpected indicates a failure worth reporting.
	Unexpected
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Expected:
		return "expected"
	case Unexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Result is the classified outcome of running the command for one module.
type Result struct {
	Module   Module
	Outcome  Outcome
	ExitCode int
	TimedOut bool
	Stderr   string
	Duration time.Duration
}

// Reported reports whether the module should be surfaced to the user.
func (r Result) Reported() bool {
	return r.Outcome == Unexpected
}

// Summary aggregates results of a scan.
type Summary struct {
	Total      int
	Passed     int
	Expected   int
	Unexpected int
	TimedOut   int
}

// Add folds a result into the summary.
func (s *Summary) Add(r Result) {
	s.Total++

	switch r.Outcome {
	case Passed:
		s.Passed++
	case Expected:
		s.Expected++
	case Unexpected:
		s.Unexpected++
	}

	if r.TimedOut {
		s.TimedOut++
	}
}
