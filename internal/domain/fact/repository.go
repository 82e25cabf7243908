package fact

import (
	"context"
)

// PriceRepository defines fact_prices operations.
type PriceRepository interface {
	// ExistingKeys loads the natural-key index used for anti-join dedup.
	ExistingKeys(ctx context.Context) (map[PriceKey]struct{}, error)

	// InsertBatch inserts price facts, skipping natural-key conflicts.
	// Returns the number of rows actually inserted.
	InsertBatch(ctx context.Context, prices []Price) (int, error)
}

// NewsRepository defines fact_news operations.
type NewsRepository interface {
	// ExistingURLs loads the URL index used for anti-join dedup.
	ExistingURLs(ctx context.Context) (map[string]struct{}, error)

	// InsertBatch inserts news facts, skipping URL conflicts.
	InsertBatch(ctx context.Context, articles []News) (int, error)
}

// EconomicsRepository defines fact_economics operations.
type EconomicsRepository interface {
	// ExistingKeys loads the natural-key index used for anti-join dedup.
	ExistingKeys(ctx context.Context) (map[EconomicKey]struct{}, error)

	// InsertBatch inserts economic facts with a pending change percent.
	InsertBatch(ctx context.Context, observations []Economic) (int, error)

	// ListObservations returns every economic fact ordered by
	// (indicator_key, date_key) for the delta pass.
	ListObservations(ctx context.Context) ([]Observation, error)

	// ApplyDeltas writes computed change percents to rows that are still
	// pending. Rows already holding a value are left untouched.
	ApplyDeltas(ctx context.Context, updates []DeltaUpdate) (int, error)
}
