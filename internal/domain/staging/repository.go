package staging

import (
	"context"
)

// PriceReader reads staged stock price rows. The engine never deletes or
// mutates staging data.
type PriceReader interface {
	ListAll(ctx context.Context) ([]StockPriceRow, error)
	DistinctSymbols(ctx context.Context) ([]string, error)
}

// NewsReader reads staged news article rows.
type NewsReader interface {
	ListAll(ctx context.Context) ([]NewsArticleRow, error)
	DistinctSymbols(ctx context.Context) ([]string, error)
}

// EconReader reads staged economic observation rows.
type EconReader interface {
	ListAll(ctx context.Context) ([]EconRow, error)
	DistinctSeries(ctx context.Context) ([]SeriesRef, error)
}
