package transform

import (
	"time"

	"github.com/finmart/warehouse/internal/domain/summary"
)

// CalendarResult reports the calendar build.
type CalendarResult struct {
	Generated int `json:"generated"`
	Existing  int `json:"existing"`
	Inserted  int `json:"inserted"`
}

// ResolverResult reports one dimension resolver pass.
type ResolverResult struct {
	Discovered int `json:"discovered"`
	Inserted   int `json:"inserted"`
	Resolved   int `json:"resolved"`
}

// MergeResult reports one fact merge pass. Staged counts every row read,
// Rejected the rows dropped by validation or coercion, Unresolvable the rows
// whose dimension keys could not be found, Duplicate the rows removed by
// in-batch and anti-join dedup, Inserted the rows that actually landed.
type MergeResult struct {
	Staged       int `json:"staged"`
	Rejected     int `json:"rejected"`
	Unresolvable int `json:"unresolvable"`
	Duplicate    int `json:"duplicate"`
	Inserted     int `json:"inserted"`
}

// DeltaResult reports the change-percent pass.
type DeltaResult struct {
	Observations int `json:"observations"`
	Pending      int `json:"pending"`
	Updated      int `json:"updated"`
}

// RunSummary is the post-run report read back from the warehouse.
type RunSummary struct {
	Counts           summary.TableCounts `json:"table_counts"`
	Breadth          summary.Breadth     `json:"market_breadth"`
	AverageSentiment *float64            `json:"average_sentiment"`
}

// ComponentTiming records how long one component took.
type ComponentTiming struct {
	Component string        `json:"component"`
	Duration  time.Duration `json:"duration"`
}

// RunReport aggregates everything a single transform run did. Component
// failures are collected rather than short-circuiting the run: one broken
// feed must not block the others.
type RunReport struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`

	Calendar   CalendarResult `json:"calendar"`
	Securities ResolverResult `json:"securities"`
	Indicators ResolverResult `json:"indicators"`
	Prices     MergeResult    `json:"prices"`
	News       MergeResult    `json:"news"`
	Economics  MergeResult    `json:"economics"`
	Delta      DeltaResult    `json:"delta"`
	Summary    *RunSummary    `json:"summary,omitempty"`

	Timings  []ComponentTiming `json:"timings"`
	Failures []string          `json:"failures,omitempty"`

	Duration time.Duration `json:"duration"`
}

// Failed reports whether any component failed.
func (r *RunReport) Failed() bool {
	return len(r.Failures) > 0
}
