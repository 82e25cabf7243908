package summary

import (
	"context"
)

// Reader provides the read-only queries behind the post-run report.
type Reader interface {
	TableCounts(ctx context.Context) (TableCounts, error)
	MarketBreadth(ctx context.Context) (Breadth, error)

	// AverageSentiment returns the mean news sentiment score, or nil when no
	// scored articles exist.
	AverageSentiment(ctx context.Context) (*float64, error)
}
