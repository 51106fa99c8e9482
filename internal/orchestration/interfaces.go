package orchestration

import (
	"io"
	"math/big"
	"time"
)

// Verdict is one tester's answer for one candidate.
type Verdict struct {
	// Tester is the name of the primality test (e.g., "Miller-Rabin").
	Tester string
	// Prime reports whether the tester considers the candidate probably prime.
	Prime bool
}

// Classification encapsulates the outcome of running every selected tester
// on a single candidate.
type Classification struct {
	// Candidate is the integer that was classified.
	Candidate *big.Int
	// Verdicts holds one entry per tester that ran, in tester order.
	Verdicts []Verdict
	// Duration is the time spent on this candidate.
	Duration time.Duration
	// Err is set when the classification did not complete.
	Err error
}

// Prime reports whether every tester considered the candidate probably prime.
// A classification with no verdicts is not prime.
func (c Classification) Prime() bool {
	if len(c.Verdicts) == 0 {
		return false
	}
	for _, v := range c.Verdicts {
		if !v.Prime {
			return false
		}
	}
	return true
}

// Agreed reports whether all verdicts are identical.
func (c Classification) Agreed() bool {
	for _, v := range c.Verdicts {
		if v.Prime != c.Verdicts[0].Prime {
			return false
		}
	}
	return true
}

// Summary aggregates a batch of classifications.
type Summary struct {
	Primes     int
	Composites int
	// Disagreements lists candidates on which the testers differed, typically
	// Carmichael numbers passing Fermat but failing Miller-Rabin.
	Disagreements []Classification
	// Failed lists classifications that ended with an error.
	Failed []Classification
}

// ResultPresenter defines the interface for presenting classification results.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats without modifying the orchestration logic.
type ResultPresenter interface {
	// PresentClassification displays the verdicts for one candidate.
	PresentClassification(c Classification, out io.Writer)
	// PresentSummary displays the aggregate of a batch.
	PresentSummary(s Summary, out io.Writer)
}

// NullPresenter is a no-op implementation of ResultPresenter.
type NullPresenter struct{}

// PresentClassification does nothing.
func (NullPresenter) PresentClassification(Classification, io.Writer) {}

// PresentSummary does nothing.
func (NullPresenter) PresentSummary(Summary, io.Writer) {}
