// Package report implements component C5: folding per-file results into a
// BatchSummary and rendering it as human-readable diagnostic output.
package report

import (
	"github.com/bug-ops/fast-yaml/internal/core"
)

// Aggregator folds a slice of FileResults into a BatchSummary, maintaining
// the invariant Total == Formatted+Unchanged+Skipped+Failed and
// len(Errors) == Failed. Fold does not set BatchSummary.Duration: that is
// the batch's own wall-clock time, measured by the Pool around the whole
// run, not a sum of per-file durations (which would overstate elapsed time
// under parallel execution).
type Aggregator struct{}

// NewAggregator returns an Aggregator. It holds no state; all instances
// are interchangeable.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Fold walks results in order and accumulates counts. A
// Formatted{changed:false} outcome is routed to Unchanged rather than
// Formatted, matching spec.md's "only observably changed content is
// reported as formatted" rule -- though in practice the Processor never
// produces that combination, Fold still honors it defensively.
func (a *Aggregator) Fold(results []core.FileResult) core.BatchSummary {
	summary := core.BatchSummary{Total: len(results)}

	for _, r := range results {
		switch {
		case r.Outcome.IsFormatted():
			summary.Formatted++
		case r.Outcome.IsUnchanged():
			summary.Unchanged++
		case r.Outcome.IsSkipped():
			summary.Skipped++
		case r.Outcome.IsFailed():
			summary.Failed++
			summary.Errors = append(summary.Errors, core.FileError{Path: r.Path, Err: r.Outcome.Err()})
		default:
			// An Outcome built with Formatted(false) never occurs from
			// Process, but falls here rather than silently miscounting.
			summary.Unchanged++
		}
	}

	return summary
}
