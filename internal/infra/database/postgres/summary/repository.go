package summary

import (
	"context"
	"fmt"

	"github.com/finmart/warehouse/internal/domain/summary"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// Repository implements summary.Reader over the analytics schema.
type Repository struct {
	db postgres.Querier
}

// NewRepository creates a summary reader.
func NewRepository(db postgres.Querier) *Repository {
	return &Repository{db: db}
}

// TableCounts counts every warehouse table in one round trip.
func (r *Repository) TableCounts(ctx context.Context) (summary.TableCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM analytics.dim_date),
			(SELECT COUNT(*) FROM analytics.dim_security),
			(SELECT COUNT(*) FROM analytics.dim_economic_indicator),
			(SELECT COUNT(*) FROM analytics.fact_prices),
			(SELECT COUNT(*) FROM analytics.fact_news),
			(SELECT COUNT(*) FROM analytics.fact_economics)
	`

	var counts summary.TableCounts
	err := r.db.QueryRow(ctx, query).Scan(
		&counts.Dates,
		&counts.Securities,
		&counts.Indicators,
		&counts.Prices,
		&counts.News,
		&counts.Economics,
	)
	if err != nil {
		return summary.TableCounts{}, fmt.Errorf("query table counts: %w", err)
	}

	return counts, nil
}

// MarketBreadth compares each security's two most recent closes.
func (r *Repository) MarketBreadth(ctx context.Context) (summary.Breadth, error) {
	query := `
		WITH ranked AS (
			SELECT security_key, close_price,
			       ROW_NUMBER() OVER (PARTITION BY security_key ORDER BY date_key DESC) AS rn
			FROM analytics.fact_prices
		),
		paired AS (
			SELECT latest.close_price AS latest, prev.close_price AS prev
			FROM ranked latest
			JOIN ranked prev ON prev.security_key = latest.security_key AND prev.rn = 2
			WHERE latest.rn = 1
		)
		SELECT
			COUNT(*) FILTER (WHERE latest > prev),
			COUNT(*) FILTER (WHERE latest < prev),
			COUNT(*) FILTER (WHERE latest = prev)
		FROM paired
	`

	var breadth summary.Breadth
	if err := r.db.QueryRow(ctx, query).Scan(&breadth.Gainers, &breadth.Losers, &breadth.Unchanged); err != nil {
		return summary.Breadth{}, fmt.Errorf("query market breadth: %w", err)
	}

	return breadth, nil
}

// AverageSentiment averages scored news articles. Returns nil when no
// article carries a score.
func (r *Repository) AverageSentiment(ctx context.Context) (*float64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx, `SELECT AVG(sentiment_score) FROM analytics.fact_news`).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("query average sentiment: %w", err)
	}

	return avg, nil
}
