package staging

import (
	"context"
	"fmt"

	"github.com/finmart/warehouse/internal/domain/staging"
	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

// PriceRepository reads staging.raw_stock_prices.
type PriceRepository struct {
	db postgres.Querier
}

// NewPriceRepository creates a staged price reader.
func NewPriceRepository(db postgres.Querier) *PriceRepository {
	return &PriceRepository{db: db}
}

// ListAll returns every staged stock price row. Missing text fields come back
// as empty strings; coercion decides what is usable.
func (r *PriceRepository) ListAll(ctx context.Context) ([]staging.StockPriceRow, error) {
	query := `
		SELECT
			id,
			COALESCE(symbol, '') AS symbol,
			COALESCE(trade_date, '') AS trade_date,
			COALESCE(open_price, '') AS open_price,
			COALESCE(high_price, '') AS high_price,
			COALESCE(low_price, '') AS low_price,
			COALESCE(close_price, '') AS close_price,
			COALESCE(volume, '') AS volume,
			ingested_at
		FROM staging.raw_stock_prices
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query staged prices: %w", err)
	}
	defer rows.Close()

	var staged []staging.StockPriceRow
	for rows.Next() {
		var row staging.StockPriceRow
		if err := rows.Scan(
			&row.ID, &row.Symbol, &row.TradeDate,
			&row.OpenPrice, &row.HighPrice, &row.LowPrice, &row.ClosePrice,
			&row.Volume, &row.IngestedAt,
		); err != nil {
			return nil, fmt.Errorf("scan staged price: %w", err)
		}
		staged = append(staged, row)
	}

	return staged, rows.Err()
}

// DistinctSymbols returns the distinct ticker symbols observed in staged
// price data.
func (r *PriceRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT symbol
		FROM staging.raw_stock_prices
		WHERE symbol IS NOT NULL AND symbol <> ''
		ORDER BY symbol
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query distinct price symbols: %w", err)
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
