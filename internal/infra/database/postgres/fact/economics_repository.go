package fact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finmart/warehouse/internal/domain/fact"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// EconomicsRepository implements fact.EconomicsRepository over
// analytics.fact_economics.
type EconomicsRepository struct {
	db postgres.Querier
}

// NewEconomicsRepository creates an economics fact repository.
func NewEconomicsRepository(db postgres.Querier) *EconomicsRepository {
	return &EconomicsRepository{db: db}
}

// ExistingKeys loads the (date_key, indicator_key) index for anti-join dedup.
func (r *EconomicsRepository) ExistingKeys(ctx context.Context) (map[fact.EconomicKey]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT date_key, indicator_key FROM analytics.fact_economics`)
	if err != nil {
		return nil, fmt.Errorf("query fact_economics keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[fact.EconomicKey]struct{})
	for rows.Next() {
		var key fact.EconomicKey
		if err := rows.Scan(&key.DateKey, &key.IndicatorKey); err != nil {
			return nil, fmt.Errorf("scan economics key: %w", err)
		}
		keys[key] = struct{}{}
	}

	return keys, rows.Err()
}

// InsertBatch inserts economic facts. change_percent starts NULL (pending);
// only the delta pass may fill it.
func (r *EconomicsRepository) InsertBatch(ctx context.Context, observations []fact.Economic) (int, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO analytics.fact_economics
			(date_key, indicator_key, value, change_percent)
		VALUES ($1, $2, $3, NULL)
		ON CONFLICT (date_key, indicator_key) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, o := range observations {
		batch.Queue(query, o.DateKey, o.IndicatorKey, o.Value)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range observations {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch insert fact_economics: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ListObservations returns every economic fact ordered for the per-indicator
// chronological delta scan.
func (r *EconomicsRepository) ListObservations(ctx context.Context) ([]fact.Observation, error) {
	query := `
		SELECT id, indicator_key, date_key, value, change_percent
		FROM analytics.fact_economics
		ORDER BY indicator_key, date_key
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query economic observations: %w", err)
	}
	defer rows.Close()

	var observations []fact.Observation
	for rows.Next() {
		var obs fact.Observation
		if err := rows.Scan(&obs.ID, &obs.IndicatorKey, &obs.DateKey, &obs.Value, &obs.ChangePercent); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		observations = append(observations, obs)
	}

	return observations, rows.Err()
}

// ApplyDeltas writes computed change percents. The change_percent IS NULL
// guard makes the update single-shot: once a value is set it never re-fires,
// even across overlapping runs.
func (r *EconomicsRepository) ApplyDeltas(ctx context.Context, updates []fact.DeltaUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	query := `
		UPDATE analytics.fact_economics
		SET change_percent = $1
		WHERE id = $2 AND change_percent IS NULL
	`

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(query, u.ChangePercent, u.ID)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	updated := 0
	for range updates {
		tag, err := br.Exec()
		if err != nil {
			return updated, fmt.Errorf("batch update change_percent: %w", err)
		}
		updated += int(tag.RowsAffected())
	}

	return updated, nil
}
