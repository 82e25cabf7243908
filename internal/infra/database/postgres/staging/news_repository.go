package staging

import (
	"context"
	"fmt"

	"github.com/finmart/warehouse/internal/domain/staging"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// NewsRepository reads staging.raw_news_articles.
type NewsRepository struct {
	db postgres.Querier
}

// NewNewsRepository creates a staged news reader.
func NewNewsRepository(db postgres.Querier) *NewsRepository {
	return &NewsRepository{db: db}
}

// ListAll returns every staged news article row.
func (r *NewsRepository) ListAll(ctx context.Context) ([]staging.NewsArticleRow, error) {
	query := `
		SELECT
			id,
			COALESCE(symbol_searched, '') AS symbol_searched,
			COALESCE(title, '') AS title,
			COALESCE(description, '') AS description,
			COALESCE(url, '') AS url,
			COALESCE(source_name, '') AS source_name,
			COALESCE(published_at, '') AS published_at,
			COALESCE(sentiment_score, '') AS sentiment_score,
			ingested_at
		FROM staging.raw_news_articles
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query staged news: %w", err)
	}
	defer rows.Close()

	var staged []staging.NewsArticleRow
	for rows.Next() {
		var row staging.NewsArticleRow
		if err := rows.Scan(
			&row.ID, &row.SymbolSearched, &row.Title, &row.Description,
			&row.URL, &row.SourceName, &row.PublishedAt, &row.SentimentScore,
			&row.IngestedAt,
		); err != nil {
			return nil, fmt.Errorf("scan staged news: %w", err)
		}
		staged = append(staged, row)
	}

	return staged, rows.Err()
}

// DistinctSymbols returns the distinct search symbols observed in staged news.
func (r *NewsRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT symbol_searched
		FROM staging.raw_news_articles
		WHERE symbol_searched IS NOT NULL AND symbol_searched <> ''
		ORDER BY symbol_searched
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query distinct news symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}

	return symbols, rows.Err()
}
