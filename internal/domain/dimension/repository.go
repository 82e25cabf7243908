package dimension

import (
	"context"
)

// DateRepository defines dim_date operations.
type DateRepository interface {
	// InsertBatch inserts calendar rows, skipping keys that already exist.
	// Returns the number of rows actually inserted.
	InsertBatch(ctx context.Context, dates []Date) (int, error)

	// ExistingKeys returns the set of date keys present in the dimension.
	ExistingKeys(ctx context.Context) (map[int]struct{}, error)
}

// SecurityRepository defines dim_security operations.
type SecurityRepository interface {
	// InsertBatch inserts securities, treating a symbol uniqueness conflict
	// as already-resolved. Returns the number of rows actually inserted.
	InsertBatch(ctx context.Context, securities []Security) (int, error)

	// KeyBySymbol returns the full natural-key to surrogate-key map.
	KeyBySymbol(ctx context.Context) (map[string]int64, error)
}

// IndicatorRepository defines dim_economic_indicator operations.
type IndicatorRepository interface {
	// InsertBatch inserts indicators, treating a series-id uniqueness
	// conflict as already-resolved. Returns the number of rows inserted.
	InsertBatch(ctx context.Context, indicators []Indicator) (int, error)

	// KeyBySeries returns the full natural-key to surrogate-key map.
	KeyBySeries(ctx context.Context) (map[string]int64, error)
}
