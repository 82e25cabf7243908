package fact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finmart/warehouse/internal/domain/fact"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// PriceRepository implements fact.PriceRepository over analytics.fact_prices.
type PriceRepository struct {
	db postgres.Querier
}

// NewPriceRepository creates a price fact repository.
func NewPriceRepository(db postgres.Querier) *PriceRepository {
	return &PriceRepository{db: db}
}

// ExistingKeys loads the (date_key, security_key) index for anti-join dedup.
func (r *PriceRepository) ExistingKeys(ctx context.Context) (map[fact.PriceKey]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT date_key, security_key FROM analytics.fact_prices`)
	if err != nil {
		return nil, fmt.Errorf("query fact_prices keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[fact.PriceKey]struct{})
	for rows.Next() {
		var key fact.PriceKey
		if err := rows.Scan(&key.DateKey, &key.SecurityKey); err != nil {
			return nil, fmt.Errorf("scan price key: %w", err)
		}
		keys[key] = struct{}{}
	}

	return keys, rows.Err()
}

// InsertBatch inserts price facts. The unique constraint on
// (date_key, security_key) backstops overlapping runs; conflicts are skipped.
func (r *PriceRepository) InsertBatch(ctx context.Context, prices []fact.Price) (int, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO analytics.fact_prices
			(date_key, security_key, open_price, high_price, low_price, close_price, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (date_key, security_key) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, p := range prices {
		batch.Queue(query, p.DateKey, p.SecurityKey, p.Open, p.High, p.Low, p.Close, p.Volume)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range prices {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch insert fact_prices: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
