package fact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finmart/warehouse/internal/domain/fact"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// NewsRepository implements fact.NewsRepository over analytics.fact_news.
type NewsRepository struct {
	db postgres.Querier
}

// NewNewsRepository creates a news fact repository.
func NewNewsRepository(db postgres.Querier) *NewsRepository {
	return &NewsRepository{db: db}
}

// ExistingURLs loads the URL index for anti-join dedup. The URL is the whole
// natural key: the same article under two search symbols still lands once.
func (r *NewsRepository) ExistingURLs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT url FROM analytics.fact_news`)
	if err != nil {
		return nil, fmt.Errorf("query fact_news urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		urls[url] = struct{}{}
	}

	return urls, rows.Err()
}

// InsertBatch inserts news facts, skipping URL conflicts.
func (r *NewsRepository) InsertBatch(ctx context.Context, articles []fact.News) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO analytics.fact_news
			(date_key, security_key, title, description, url, source_name, sentiment_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (url) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, a := range articles {
		batch.Queue(query, a.DateKey, a.SecurityKey, a.Title, a.Description, a.URL, a.SourceName, a.SentimentScore)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range articles {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch insert fact_news: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
