package transform

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// readSummary collects the post-run report. It only reads; a failure here
// never invalidates the run itself.
func (s *Service) readSummary(ctx context.Context, st Stores) (*RunSummary, error) {
	counts, err := st.Summary.TableCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("read table counts: %w", err)
	}

	breadth, err := st.Summary.MarketBreadth(ctx)
	if err != nil {
		return nil, fmt.Errorf("read market breadth: %w", err)
	}

	sentiment, err := st.Summary.AverageSentiment(ctx)
	if err != nil {
		return nil, fmt.Errorf("read average sentiment: %w", err)
	}

	event := log.Info().
		Int64("dim_date", counts.Dates).
		Int64("dim_security", counts.Securities).
		Int64("dim_economic_indicator", counts.Indicators).
		Int64("fact_prices", counts.Prices).
		Int64("fact_news", counts.News).
		Int64("fact_economics", counts.Economics).
		Int64("gainers", breadth.Gainers).
		Int64("losers", breadth.Losers).
		Int64("unchanged", breadth.Unchanged)
	if sentiment != nil {
		event = event.Float64("avg_sentiment", *sentiment)
	}
	event.Msg("Warehouse summary")

	return &RunSummary{
		Counts:           counts,
		Breadth:          breadth,
		AverageSentiment: sentiment,
	}, nil
}
