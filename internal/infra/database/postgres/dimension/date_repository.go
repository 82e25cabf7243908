package dimension

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finmart/warehouse/internal/domain/dimension"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// DateRepository implements dimension.DateRepository over analytics.dim_date.
type DateRepository struct {
	db postgres.Querier
}

// NewDateRepository creates a date dimension repository.
func NewDateRepository(db postgres.Querier) *DateRepository {
	return &DateRepository{db: db}
}

// InsertBatch inserts calendar rows. The date key is a pure function of the
// date, so a conflict always means the identical row already exists and the
// insert is skipped.
func (r *DateRepository) InsertBatch(ctx context.Context, dates []dimension.Date) (int, error) {
	if len(dates) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO analytics.dim_date
			(date_key, full_date, day_name, month_name, month_num, quarter, year, is_weekend, is_holiday)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (date_key) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, d := range dates {
		batch.Queue(query,
			d.DateKey, d.FullDate, d.DayName, d.MonthName,
			d.MonthNum, d.Quarter, d.Year, d.IsWeekend, d.IsHoliday,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range dates {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch insert dim_date: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ExistingKeys returns every date key present in the dimension.
func (r *DateRepository) ExistingKeys(ctx context.Context) (map[int]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT date_key FROM analytics.dim_date`)
	if err != nil {
		return nil, fmt.Errorf("query dim_date keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[int]struct{})
	for rows.Next() {
		var key int
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan date key: %w", err)
		}
		keys[key] = struct{}{}
	}

	return keys, rows.Err()
}
