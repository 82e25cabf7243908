package dimension

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/finmart/warehouse/internal/domain/dimension"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// SecurityRepository implements dimension.SecurityRepository over
// analytics.dim_security.
type SecurityRepository struct {
	db postgres.Querier
}

// NewSecurityRepository creates a security dimension repository.
func NewSecurityRepository(db postgres.Querier) *SecurityRepository {
	return &SecurityRepository{db: db}
}

// InsertBatch inserts new securities. A symbol conflict means a concurrent
// run already resolved the key; the row is skipped, never treated as fatal.
// Surrogate keys are assigned by the database and never reused.
func (r *SecurityRepository) InsertBatch(ctx context.Context, securities []dimension.Security) (int, error) {
	if len(securities) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO analytics.dim_security
			(symbol, company_name, sector, industry, market_cap)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (symbol) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, s := range securities {
		batch.Queue(query, s.Symbol, s.CompanyName, s.Sector, s.Industry, s.MarketCap)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range securities {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch insert dim_security: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// KeyBySymbol returns the full symbol to surrogate-key map.
func (r *SecurityRepository) KeyBySymbol(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT symbol, security_key FROM analytics.dim_security`)
	if err != nil {
		return nil, fmt.Errorf("query dim_security keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]int64)
	for rows.Next() {
		var symbol string
		var key int64
		if err := rows.Scan(&symbol, &key); err != nil {
			return nil, fmt.Errorf("scan security key: %w", err)
		}
		keys[symbol] = key
	}

	return keys, rows.Err()
}
