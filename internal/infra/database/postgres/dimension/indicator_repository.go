package dimension

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finmart/warehouse/internal/domain/dimension"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// IndicatorRepository implements dimension.IndicatorRepository over
// analytics.dim_economic_indicator.
type IndicatorRepository struct {
	db postgres.Querier
}

// NewIndicatorRepository creates an indicator dimension repository.
func NewIndicatorRepository(db postgres.Querier) *IndicatorRepository {
	return &IndicatorRepository{db: db}
}

// InsertBatch inserts new indicators, skipping series ids already resolved.
func (r *IndicatorRepository) InsertBatch(ctx context.Context, indicators []dimension.Indicator) (int, error) {
	if len(indicators) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO analytics.dim_economic_indicator
			(series_id, indicator_name, description, units, frequency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (series_id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, ind := range indicators {
		batch.Queue(query, ind.SeriesID, ind.Name, ind.Description, ind.Units, ind.Frequency)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range indicators {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch insert dim_economic_indicator: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// KeyBySeries returns the full series-id to surrogate-key map.
func (r *IndicatorRepository) KeyBySeries(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT series_id, indicator_key FROM analytics.dim_economic_indicator`)
	if err != nil {
		return nil, fmt.Errorf("query dim_economic_indicator keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]int64)
	for rows.Next() {
		var series string
		var key int64
		if err := rows.Scan(&series, &key); err != nil {
			return nil, fmt.Errorf("scan indicator key: %w", err)
		}
		keys[series] = key
	}

	return keys, rows.Err()
}
