package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/finmart/warehouse/internal/domain/dimension"
	"github.com/finmart/warehouse/internal/domain/fact"
	"github.com/finmart/warehouse/internal/domain/staging"
	"github.com/shopspring/decimal"
)

// The mergers share one shape: read every staged row, coerce and validate it
// row by row, resolve dimension keys, drop in-batch duplicates, anti-join
// against what the warehouse already holds, insert the remainder. Bad rows
// are counted and logged at debug, never fatal; the staging table is the
// audit trail so nothing is deleted.

// mergePrices transforms staging.raw_stock_prices into fact_prices.
func (s *Service) mergePrices(ctx context.Context, st Stores) (MergeResult, error) {
	rows, err := st.StagedPrices.ListAll(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("list staged prices: %w", err)
	}

	securityKeys, err := st.Securities.KeyBySymbol(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("load security keys: %w", err)
	}
	dateKeys, err := st.Dates.ExistingKeys(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("load date keys: %w", err)
	}
	existing, err := st.Prices.ExistingKeys(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("load existing price keys: %w", err)
	}

	result := MergeResult{Staged: len(rows)}
	batch := make(map[fact.PriceKey]struct{}, len(rows))
	candidates := make([]fact.Price, 0, len(rows))

	for _, row := range rows {
		price, err := s.coercePrice(row, securityKeys, dateKeys)
		if err != nil {
			result.Rejected++
			log.Debug().Int64("staging_id", row.ID).Err(err).Msg("Price row rejected")
			continue
		}
		if price == nil {
			result.Unresolvable++
			continue
		}

		key := price.Key()
		if _, dup := batch[key]; dup {
			result.Duplicate++
			continue
		}
		if _, dup := existing[key]; dup {
			result.Duplicate++
			continue
		}
		batch[key] = struct{}{}
		candidates = append(candidates, *price)
	}

	inserted, err := st.Prices.InsertBatch(ctx, candidates)
	if err != nil {
		return result, fmt.Errorf("insert price facts: %w", err)
	}
	result.Inserted = inserted

	log.Info().
		Int("staged", result.Staged).
		Int("rejected", result.Rejected).
		Int("unresolvable", result.Unresolvable).
		Int("duplicate", result.Duplicate).
		Int("inserted", result.Inserted).
		Msg("✅ Price facts merged")

	return result, nil
}

// coercePrice turns one staged row into a fact. A nil fact with nil error
// means a dimension key could not be resolved.
func (s *Service) coercePrice(row staging.StockPriceRow, securityKeys map[string]int64, dateKeys map[int]struct{}) (*fact.Price, error) {
	if err := s.validate.Struct(row); err != nil {
		return nil, fmt.Errorf("%w: %v", staging.ErrBadRow, err)
	}

	tradeDate, err := staging.ParseDate(row.TradeDate)
	if err != nil {
		return nil, err
	}
	closePrice, err := staging.ParsePrice(row.ClosePrice)
	if err != nil {
		return nil, err
	}
	if !closePrice.IsPositive() {
		return nil, fmt.Errorf("%w: close %s", fact.ErrNonPositiveClose, closePrice)
	}

	open, err := optionalPrice(row.OpenPrice)
	if err != nil {
		return nil, err
	}
	high, err := optionalPrice(row.HighPrice)
	if err != nil {
		return nil, err
	}
	low, err := optionalPrice(row.LowPrice)
	if err != nil {
		return nil, err
	}
	volume, err := staging.ParseVolume(row.Volume)
	if err != nil {
		return nil, err
	}

	securityKey, ok := securityKeys[row.Symbol]
	if !ok {
		log.Warn().Str("symbol", row.Symbol).Msg("⚠️  Symbol missing from dim_security, skipping row")
		return nil, nil
	}
	dateKey := dimension.DateKey(tradeDate)
	if _, ok := dateKeys[dateKey]; !ok {
		log.Warn().Int("date_key", dateKey).Msg("⚠️  Trade date outside calendar horizon, skipping row")
		return nil, nil
	}

	return &fact.Price{
		DateKey:     dateKey,
		SecurityKey: securityKey,
		Open:        open,
		High:        high,
		Low:         low,
		Close:       closePrice,
		Volume:      volume,
	}, nil
}

// mergeNews transforms staging.raw_news_articles into fact_news.
func (s *Service) mergeNews(ctx context.Context, st Stores) (MergeResult, error) {
	rows, err := st.StagedNews.ListAll(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("list staged news: %w", err)
	}

	securityKeys, err := st.Securities.KeyBySymbol(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("load security keys: %w", err)
	}
	dateKeys, err := st.Dates.ExistingKeys(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("load date keys: %w", err)
	}
	existing, err := st.News.ExistingURLs(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("load existing news urls: %w", err)
	}

	result := MergeResult{Staged: len(rows)}
	batch := make(map[string]struct{}, len(rows))
	candidates := make([]fact.News, 0, len(rows))

	for _, row := range rows {
		article, err := s.coerceNews(row, securityKeys, dateKeys)
		if err != nil {
			result.Rejected++
			log.Debug().Int64("staging_id", row.ID).Err(err).Msg("News row rejected")
			continue
		}
		if article == nil {
			result.Unresolvable++
			continue
		}

		if _, dup := batch[article.URL]; dup {
			result.Duplicate++
			continue
		}
		if _, dup := existing[article.URL]; dup {
			result.Duplicate++
			continue
		}
		batch[article.URL] = struct{}{}
		candidates = append(candidates, *article)
	}

	inserted, err := st.News.InsertBatch(ctx, candidates)
	if err != nil {
		return result, fmt.Errorf("insert news facts: %w", err)
	}
	result.Inserted = inserted

	log.Info().
		Int("staged", result.Staged).
		Int("rejected", result.Rejected).
		Int("unresolvable", result.Unresolvable).
		Int("duplicate", result.Duplicate).
		Int("inserted", result.Inserted).
		Msg("✅ News facts merged")

	return result, nil
}

func (s *Service) coerceNews(row staging.NewsArticleRow, securityKeys map[string]int64, dateKeys map[int]struct{}) (*fact.News, error) {
	if err := s.validate.Struct(row); err != nil {
		return nil, fmt.Errorf("%w: %v", staging.ErrBadRow, err)
	}

	published, err := staging.ParseTimestamp(row.PublishedAt)
	if err != nil {
		return nil, err
	}
	sentiment, err := staging.ParseSentiment(row.SentimentScore)
	if err != nil {
		return nil, err
	}

	securityKey, ok := securityKeys[row.SymbolSearched]
	if !ok {
		log.Warn().Str("symbol", row.SymbolSearched).Msg("⚠️  Symbol missing from dim_security, skipping row")
		return nil, nil
	}
	dateKey := dimension.DateKey(published)
	if _, ok := dateKeys[dateKey]; !ok {
		log.Warn().Int("date_key", dateKey).Msg("⚠️  Published date outside calendar horizon, skipping row")
		return nil, nil
	}

	return &fact.News{
		DateKey:        dateKey,
		SecurityKey:    securityKey,
		Title:          strings.TrimSpace(row.Title),
		Description:    strings.TrimSpace(row.Description),
		URL:            strings.TrimSpace(row.URL),
		SourceName:     strings.TrimSpace(row.SourceName),
		SentimentScore: sentiment,
	}, nil
}

// mergeEconomics transforms staging.raw_econ_data into fact_economics.
// Inserted rows carry a pending change percent for the delta pass.
func (s *Service) mergeEconomics(ctx context.Context, st Stores) (MergeResult, error) {
	rows, err := st.StagedEcon.ListAll(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("list staged econ data: %w", err)
	}

	indicatorKeys, err := st.Indicators.KeyBySeries(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("load indicator keys: %w", err)
	}
	dateKeys, err := st.Dates.ExistingKeys(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("load date keys: %w", err)
	}
	existing, err := st.Economics.ExistingKeys(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("load existing economics keys: %w", err)
	}

	result := MergeResult{Staged: len(rows)}
	batch := make(map[fact.EconomicKey]struct{}, len(rows))
	candidates := make([]fact.Economic, 0, len(rows))

	for _, row := range rows {
		obs, err := s.coerceEconomic(row, indicatorKeys, dateKeys)
		if err != nil {
			result.Rejected++
			log.Debug().Int64("staging_id", row.ID).Err(err).Msg("Econ row rejected")
			continue
		}
		if obs == nil {
			result.Unresolvable++
			continue
		}

		key := obs.Key()
		if _, dup := batch[key]; dup {
			result.Duplicate++
			continue
		}
		if _, dup := existing[key]; dup {
			result.Duplicate++
			continue
		}
		batch[key] = struct{}{}
		candidates = append(candidates, *obs)
	}

	inserted, err := st.Economics.InsertBatch(ctx, candidates)
	if err != nil {
		return result, fmt.Errorf("insert economic facts: %w", err)
	}
	result.Inserted = inserted

	log.Info().
		Int("staged", result.Staged).
		Int("rejected", result.Rejected).
		Int("unresolvable", result.Unresolvable).
		Int("duplicate", result.Duplicate).
		Int("inserted", result.Inserted).
		Msg("✅ Economic facts merged")

	return result, nil
}

func (s *Service) coerceEconomic(row staging.EconRow, indicatorKeys map[string]int64, dateKeys map[int]struct{}) (*fact.Economic, error) {
	if err := s.validate.Struct(row); err != nil {
		return nil, fmt.Errorf("%w: %v", staging.ErrBadRow, err)
	}

	seriesDate, err := staging.ParseDate(row.SeriesDate)
	if err != nil {
		return nil, err
	}
	value, err := staging.ParseSeriesValue(row.SeriesValue)
	if err != nil {
		return nil, err
	}

	indicatorKey, ok := indicatorKeys[row.SeriesID]
	if !ok {
		log.Warn().Str("series_id", row.SeriesID).Msg("⚠️  Series missing from dim_economic_indicator, skipping row")
		return nil, nil
	}
	dateKey := dimension.DateKey(seriesDate)
	if _, ok := dateKeys[dateKey]; !ok {
		log.Warn().Int("date_key", dateKey).Msg("⚠️  Series date outside calendar horizon, skipping row")
		return nil, nil
	}

	return &fact.Economic{
		DateKey:      dateKey,
		IndicatorKey: indicatorKey,
		Value:        value,
	}, nil
}

func optionalPrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return staging.ParsePrice(s)
}
