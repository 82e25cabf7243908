package staging

import (
	"context"
	"fmt"

	"github.com/finmart/warehouse/internal/domain/staging"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// EconRepository reads staging.raw_econ_data.
type EconRepository struct {
	db postgres.Querier
}

// NewEconRepository creates a staged economic data reader.
func NewEconRepository(db postgres.Querier) *EconRepository {
	return &EconRepository{db: db}
}

// ListAll returns every staged economic observation row.
func (r *EconRepository) ListAll(ctx context.Context) ([]staging.EconRow, error) {
	query := `
		SELECT
			id,
			COALESCE(series_id, '') AS series_id,
			COALESCE(series_date, '') AS series_date,
			COALESCE(series_value, '') AS series_value,
			COALESCE(series_name, '') AS series_name,
			ingested_at
		FROM staging.raw_econ_data
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query staged econ data: %w", err)
	}
	defer rows.Close()

	var staged []staging.EconRow
	for rows.Next() {
		var row staging.EconRow
		if err := rows.Scan(
			&row.ID, &row.SeriesID, &row.SeriesDate,
			&row.SeriesValue, &row.SeriesName, &row.IngestedAt,
		); err != nil {
			return nil, fmt.Errorf("scan staged econ row: %w", err)
		}
		staged = append(staged, row)
	}

	return staged, rows.Err()
}

// DistinctSeries returns the distinct series ids observed in staged data,
// keeping one staged display name per series for the resolver's fallback.
func (r *EconRepository) DistinctSeries(ctx context.Context) ([]staging.SeriesRef, error) {
	query := `
		SELECT series_id, MAX(COALESCE(series_name, '')) AS series_name
		FROM staging.raw_econ_data
		WHERE series_id IS NOT NULL AND series_id <> ''
		GROUP BY series_id
		ORDER BY series_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query distinct series: %w", err)
	}
	defer rows.Close()

	var series []staging.SeriesRef
	for rows.Next() {
		var ref staging.SeriesRef
		if err := rows.Scan(&ref.SeriesID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan series ref: %w", err)
		}
		series = append(series, ref)
	}

	return series, rows.Err()
}
