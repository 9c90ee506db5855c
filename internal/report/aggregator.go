// Package report collects execution results and renders progress lines, the
// run summary, and the optional JSON report.
package report

import (
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// Aggregator collects failure records for one run in the order results are
// added. Records are never merged or deduplicated.
// An Aggregator is not safe for concurrent use.
type Aggregator struct {
	total    int
	failures []model.FailureRecord
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add counts a result and records a failure when it did not succeed.
func (a *Aggregator) Add(r model.ExecutionResult) {
	a.total++
	if !r.Success {
		a.failures = append(a.failures, model.NewFailureRecord(r))
	}
}

// Failures returns the recorded failures in order.
func (a *Aggregator) Failures() []model.FailureRecord {
	result := make([]model.FailureRecord, len(a.failures))
	copy(result, a.failures)
	return result
}

// Summary returns the aggregate outcome.
func (a *Aggregator) Summary(runID string) model.Summary {
	return model.Summary{
		RunID:    runID,
		Total:    a.total,
		Failures: a.Failures(),
	}
}

// Summarize aggregates a complete result sequence.
func Summarize(runID string, results []model.ExecutionResult) model.Summary {
	agg := NewAggregator()
	for _, r := range results {
		agg.Add(r)
	}
	return agg.Summary(runID)
}
