package fact

import (
	"github.com/shopspring/decimal"
)

// Price is one row of analytics.fact_prices. Rows are insert-only; the
// composite (DateKey, SecurityKey) is the natural key.
type Price struct {
	DateKey     int             `json:"date_key" db:"date_key"`
	SecurityKey int64           `json:"security_key" db:"security_key"`
	Open        decimal.Decimal `json:"open_price" db:"open_price"`
	High        decimal.Decimal `json:"high_price" db:"high_price"`
	Low         decimal.Decimal `json:"low_price" db:"low_price"`
	Close       decimal.Decimal `json:"close_price" db:"close_price"`
	Volume      int64           `json:"volume" db:"volume"`
}

// PriceKey is the dedup key for price facts.
type PriceKey struct {
	DateKey     int
	SecurityKey int64
}

// Key returns the price fact's natural key.
func (p Price) Key() PriceKey {
	return PriceKey{DateKey: p.DateKey, SecurityKey: p.SecurityKey}
}

// News is one row of analytics.fact_news. The article URL is globally unique
// on its own: the same article searched under two symbols still lands once.
type News struct {
	ArticleID      int64    `json:"article_id" db:"article_id"`
	DateKey        int      `json:"date_key" db:"date_key"`
	SecurityKey    int64    `json:"security_key" db:"security_key"`
	Title          string   `json:"title" db:"title"`
	Description    string   `json:"description" db:"description"`
	URL            string   `json:"url" db:"url"`
	SourceName     string   `json:"source_name" db:"source_name"`
	SentimentScore *float64 `json:"sentiment_score" db:"sentiment_score"`
}

// Economic is one row of analytics.fact_economics. ChangePercent is nil until
// the delta calculator fills it: nil means pending, a value (including zero)
// means computed and final.
type Economic struct {
	ID            int64            `json:"id" db:"id"`
	DateKey       int              `json:"date_key" db:"date_key"`
	IndicatorKey  int64            `json:"indicator_key" db:"indicator_key"`
	Value         decimal.Decimal  `json:"value" db:"value"`
	ChangePercent *decimal.Decimal `json:"change_percent" db:"change_percent"`
}

// EconomicKey is the dedup key for economic facts.
type EconomicKey struct {
	DateKey      int
	IndicatorKey int64
}

// Key returns the economic fact's natural key.
func (e Economic) Key() EconomicKey {
	return EconomicKey{DateKey: e.DateKey, IndicatorKey: e.IndicatorKey}
}
