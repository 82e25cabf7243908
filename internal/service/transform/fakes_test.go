package transform

import (
	"context"
	"errors"
	"sort"

	"github.com/finmart/warehouse/internal/domain/dimension"
	"github.com/finmart/warehouse/internal/domain/fact"
	"github.com/finmart/warehouse/internal/domain/staging"
	"github.com/finmart/warehouse/internal/domain/summary"
)

var errInjected = errors.New("injected failure")

// memWarehouse is an in-memory stand-in for the whole warehouse. It models
// the uniqueness constraints and the pending-only delta guard. Transaction
// rollback is not modeled; failure tests inject errors at the first store
// call of a component so nothing is half-written.
type memWarehouse struct {
	stagedPrices []staging.StockPriceRow
	stagedNews   []staging.NewsArticleRow
	stagedEcon   []staging.EconRow

	dates      map[int]dimension.Date
	securities map[string]dimension.Security
	indicators map[string]dimension.Indicator
	prices     map[fact.PriceKey]fact.Price
	news       map[string]fact.News
	economics  map[fact.EconomicKey]*fact.Economic

	nextSecurityKey  int64
	nextIndicatorKey int64
	nextEconomicID   int64

	failSecurities bool
	failIndicators bool
}

func newMemWarehouse() *memWarehouse {
	return &memWarehouse{
		dates:      make(map[int]dimension.Date),
		securities: make(map[string]dimension.Security),
		indicators: make(map[string]dimension.Indicator),
		prices:     make(map[fact.PriceKey]fact.Price),
		news:       make(map[string]fact.News),
		economics:  make(map[fact.EconomicKey]*fact.Economic),
	}
}

// WithinTx satisfies UnitOfWork.
func (w *memWarehouse) WithinTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	return fn(ctx, Stores{
		StagedPrices: memStagedPrices{w},
		StagedNews:   memStagedNews{w},
		StagedEcon:   memStagedEcon{w},
		Dates:        memDates{w},
		Securities:   memSecurities{w},
		Indicators:   memIndicators{w},
		Prices:       memPrices{w},
		News:         memNews{w},
		Economics:    memEconomics{w},
		Summary:      memSummary{w},
	})
}

type memStagedPrices struct{ w *memWarehouse }

func (m memStagedPrices) ListAll(ctx context.Context) ([]staging.StockPriceRow, error) {
	return m.w.stagedPrices, nil
}

func (m memStagedPrices) DistinctSymbols(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, row := range m.w.stagedPrices {
		if row.Symbol != "" {
			seen[row.Symbol] = struct{}{}
		}
	}
	return sortedKeys(seen), nil
}

type memStagedNews struct{ w *memWarehouse }

func (m memStagedNews) ListAll(ctx context.Context) ([]staging.NewsArticleRow, error) {
	return m.w.stagedNews, nil
}

func (m memStagedNews) DistinctSymbols(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, row := range m.w.stagedNews {
		if row.SymbolSearched != "" {
			seen[row.SymbolSearched] = struct{}{}
		}
	}
	return sortedKeys(seen), nil
}

type memStagedEcon struct{ w *memWarehouse }

func (m memStagedEcon) ListAll(ctx context.Context) ([]staging.EconRow, error) {
	return m.w.stagedEcon, nil
}

func (m memStagedEcon) DistinctSeries(ctx context.Context) ([]staging.SeriesRef, error) {
	names := make(map[string]string)
	for _, row := range m.w.stagedEcon {
		if row.SeriesID == "" {
			continue
		}
		if row.SeriesName != "" || names[row.SeriesID] == "" {
			names[row.SeriesID] = row.SeriesName
		}
	}
	refs := make([]staging.SeriesRef, 0, len(names))
	for id, name := range names {
		refs = append(refs, staging.SeriesRef{SeriesID: id, Name: name})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].SeriesID < refs[j].SeriesID })
	return refs, nil
}

type memDates struct{ w *memWarehouse }

func (m memDates) InsertBatch(ctx context.Context, dates []dimension.Date) (int, error) {
	inserted := 0
	for _, d := range dates {
		if _, ok := m.w.dates[d.DateKey]; ok {
			continue
		}
		m.w.dates[d.DateKey] = d
		inserted++
	}
	return inserted, nil
}

func (m memDates) ExistingKeys(ctx context.Context) (map[int]struct{}, error) {
	keys := make(map[int]struct{}, len(m.w.dates))
	for k := range m.w.dates {
		keys[k] = struct{}{}
	}
	return keys, nil
}

type memSecurities struct{ w *memWarehouse }

func (m memSecurities) InsertBatch(ctx context.Context, securities []dimension.Security) (int, error) {
	if m.w.failSecurities {
		return 0, errInjected
	}
	inserted := 0
	for _, s := range securities {
		if _, ok := m.w.securities[s.Symbol]; ok {
			continue
		}
		m.w.nextSecurityKey++
		s.SecurityKey = m.w.nextSecurityKey
		m.w.securities[s.Symbol] = s
		inserted++
	}
	return inserted, nil
}

func (m memSecurities) KeyBySymbol(ctx context.Context) (map[string]int64, error) {
	if m.w.failSecurities {
		return nil, errInjected
	}
	keys := make(map[string]int64, len(m.w.securities))
	for sym, s := range m.w.securities {
		keys[sym] = s.SecurityKey
	}
	return keys, nil
}

type memIndicators struct{ w *memWarehouse }

func (m memIndicators) InsertBatch(ctx context.Context, indicators []dimension.Indicator) (int, error) {
	if m.w.failIndicators {
		return 0, errInjected
	}
	inserted := 0
	for _, ind := range indicators {
		if _, ok := m.w.indicators[ind.SeriesID]; ok {
			continue
		}
		m.w.nextIndicatorKey++
		ind.IndicatorKey = m.w.nextIndicatorKey
		m.w.indicators[ind.SeriesID] = ind
		inserted++
	}
	return inserted, nil
}

func (m memIndicators) KeyBySeries(ctx context.Context) (map[string]int64, error) {
	if m.w.failIndicators {
		return nil, errInjected
	}
	keys := make(map[string]int64, len(m.w.indicators))
	for id, ind := range m.w.indicators {
		keys[id] = ind.IndicatorKey
	}
	return keys, nil
}

type memPrices struct{ w *memWarehouse }

func (m memPrices) ExistingKeys(ctx context.Context) (map[fact.PriceKey]struct{}, error) {
	keys := make(map[fact.PriceKey]struct{}, len(m.w.prices))
	for k := range m.w.prices {
		keys[k] = struct{}{}
	}
	return keys, nil
}

func (m memPrices) InsertBatch(ctx context.Context, prices []fact.Price) (int, error) {
	inserted := 0
	for _, p := range prices {
		if _, ok := m.w.prices[p.Key()]; ok {
			continue
		}
		m.w.prices[p.Key()] = p
		inserted++
	}
	return inserted, nil
}

type memNews struct{ w *memWarehouse }

func (m memNews) ExistingURLs(ctx context.Context) (map[string]struct{}, error) {
	urls := make(map[string]struct{}, len(m.w.news))
	for u := range m.w.news {
		urls[u] = struct{}{}
	}
	return urls, nil
}

func (m memNews) InsertBatch(ctx context.Context, articles []fact.News) (int, error) {
	inserted := 0
	for _, a := range articles {
		if _, ok := m.w.news[a.URL]; ok {
			continue
		}
		m.w.news[a.URL] = a
		inserted++
	}
	return inserted, nil
}

type memEconomics struct{ w *memWarehouse }

func (m memEconomics) ExistingKeys(ctx context.Context) (map[fact.EconomicKey]struct{}, error) {
	keys := make(map[fact.EconomicKey]struct{}, len(m.w.economics))
	for k := range m.w.economics {
		keys[k] = struct{}{}
	}
	return keys, nil
}

func (m memEconomics) InsertBatch(ctx context.Context, observations []fact.Economic) (int, error) {
	inserted := 0
	for _, o := range observations {
		if _, ok := m.w.economics[o.Key()]; ok {
			continue
		}
		m.w.nextEconomicID++
		o.ID = m.w.nextEconomicID
		o.ChangePercent = nil
		stored := o
		m.w.economics[o.Key()] = &stored
		inserted++
	}
	return inserted, nil
}

func (m memEconomics) ListObservations(ctx context.Context) ([]fact.Observation, error) {
	observations := make([]fact.Observation, 0, len(m.w.economics))
	for _, e := range m.w.economics {
		observations = append(observations, fact.Observation{
			ID:            e.ID,
			IndicatorKey:  e.IndicatorKey,
			DateKey:       e.DateKey,
			Value:         e.Value,
			ChangePercent: e.ChangePercent,
		})
	}
	sort.Slice(observations, func(i, j int) bool {
		if observations[i].IndicatorKey != observations[j].IndicatorKey {
			return observations[i].IndicatorKey < observations[j].IndicatorKey
		}
		return observations[i].DateKey < observations[j].DateKey
	})
	return observations, nil
}

func (m memEconomics) ApplyDeltas(ctx context.Context, updates []fact.DeltaUpdate) (int, error) {
	updated := 0
	for _, u := range updates {
		for _, e := range m.w.economics {
			if e.ID == u.ID && e.ChangePercent == nil {
				cp := u.ChangePercent
				e.ChangePercent = &cp
				updated++
			}
		}
	}
	return updated, nil
}

type memSummary struct{ w *memWarehouse }

func (m memSummary) TableCounts(ctx context.Context) (summary.TableCounts, error) {
	return summary.TableCounts{
		Dates:      int64(len(m.w.dates)),
		Securities: int64(len(m.w.securities)),
		Indicators: int64(len(m.w.indicators)),
		Prices:     int64(len(m.w.prices)),
		News:       int64(len(m.w.news)),
		Economics:  int64(len(m.w.economics)),
	}, nil
}

func (m memSummary) MarketBreadth(ctx context.Context) (summary.Breadth, error) {
	latest := make(map[int64][]fact.Price)
	for _, p := range m.w.prices {
		latest[p.SecurityKey] = append(latest[p.SecurityKey], p)
	}

	var breadth summary.Breadth
	for _, prices := range latest {
		if len(prices) < 2 {
			continue
		}
		sort.Slice(prices, func(i, j int) bool { return prices[i].DateKey > prices[j].DateKey })
		switch prices[0].Close.Cmp(prices[1].Close) {
		case 1:
			breadth.Gainers++
		case -1:
			breadth.Losers++
		default:
			breadth.Unchanged++
		}
	}
	return breadth, nil
}

func (m memSummary) AverageSentiment(ctx context.Context) (*float64, error) {
	var sum float64
	var n int
	for _, a := range m.w.news {
		if a.SentimentScore != nil {
			sum += *a.SentimentScore
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
