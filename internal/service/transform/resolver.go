package transform

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/finmart/warehouse/internal/domain/dimension"
)

// resolveSecurities makes sure every symbol seen in staging or configured in
// the base universe has a dim_security row. Surrogate keys come from the
// database; a uniqueness conflict just means another run got there first.
func (s *Service) resolveSecurities(ctx context.Context, st Stores) (ResolverResult, error) {
	seen := make(map[string]struct{})
	for _, sym := range s.symbols {
		seen[sym] = struct{}{}
	}

	priceSymbols, err := st.StagedPrices.DistinctSymbols(ctx)
	if err != nil {
		return ResolverResult{}, fmt.Errorf("list staged price symbols: %w", err)
	}
	for _, sym := range priceSymbols {
		seen[sym] = struct{}{}
	}

	newsSymbols, err := st.StagedNews.DistinctSymbols(ctx)
	if err != nil {
		return ResolverResult{}, fmt.Errorf("list staged news symbols: %w", err)
	}
	for _, sym := range newsSymbols {
		seen[sym] = struct{}{}
	}

	symbols := make([]string, 0, len(seen))
	for sym := range seen {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	securities := make([]dimension.Security, 0, len(symbols))
	for _, sym := range symbols {
		securities = append(securities, s.catalog.ResolveSecurity(sym))
	}

	inserted, err := st.Securities.InsertBatch(ctx, securities)
	if err != nil {
		return ResolverResult{}, fmt.Errorf("insert securities: %w", err)
	}

	keys, err := st.Securities.KeyBySymbol(ctx)
	if err != nil {
		return ResolverResult{}, fmt.Errorf("load security keys: %w", err)
	}

	log.Info().
		Int("discovered", len(symbols)).
		Int("inserted", inserted).
		Int("resolved", len(keys)).
		Msg("✅ Security dimension resolved")

	return ResolverResult{Discovered: len(symbols), Inserted: inserted, Resolved: len(keys)}, nil
}

// resolveIndicators does the same for economic series ids. Staged series
// names feed the resolver's fallback for series outside the catalog.
func (s *Service) resolveIndicators(ctx context.Context, st Stores) (ResolverResult, error) {
	names := make(map[string]string)
	for _, id := range s.series {
		names[id] = ""
	}

	refs, err := st.StagedEcon.DistinctSeries(ctx)
	if err != nil {
		return ResolverResult{}, fmt.Errorf("list staged series: %w", err)
	}
	for _, ref := range refs {
		if ref.Name != "" || names[ref.SeriesID] == "" {
			names[ref.SeriesID] = ref.Name
		}
	}

	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	indicators := make([]dimension.Indicator, 0, len(ids))
	for _, id := range ids {
		indicators = append(indicators, s.catalog.ResolveIndicator(id, names[id]))
	}

	inserted, err := st.Indicators.InsertBatch(ctx, indicators)
	if err != nil {
		return ResolverResult{}, fmt.Errorf("insert indicators: %w", err)
	}

	keys, err := st.Indicators.KeyBySeries(ctx)
	if err != nil {
		return ResolverResult{}, fmt.Errorf("load indicator keys: %w", err)
	}

	log.Info().
		Int("discovered", len(ids)).
		Int("inserted", inserted).
		Int("resolved", len(keys)).
		Msg("✅ Indicator dimension resolved")

	return ResolverResult{Discovered: len(ids), Inserted: inserted, Resolved: len(keys)}, nil
}
