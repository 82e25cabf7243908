package transform

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/finmart/warehouse/internal/domain/fact"
)

// computeDeltas fills pending change percents on fact_economics. The fold is
// pure; the repository's IS NULL guard keeps the write single-shot even if
// two runs race.
func (s *Service) computeDeltas(ctx context.Context, st Stores) (DeltaResult, error) {
	observations, err := st.Economics.ListObservations(ctx)
	if err != nil {
		return DeltaResult{}, fmt.Errorf("list economic observations: %w", err)
	}

	updates := fact.ComputeDeltas(observations)

	updated, err := st.Economics.ApplyDeltas(ctx, updates)
	if err != nil {
		return DeltaResult{}, fmt.Errorf("apply change percents: %w", err)
	}

	log.Info().
		Int("observations", len(observations)).
		Int("pending", len(updates)).
		Int("updated", updated).
		Msg("✅ Change percents computed")

	return DeltaResult{
		Observations: len(observations),
		Pending:      len(updates),
		Updated:      updated,
	}, nil
}
