package staging

import (
	"time"
)

// Staged rows are loosely typed on purpose: the extraction collaborator dumps
// API payloads as text and this engine owns all coercion. Validator tags
// cover the required-field rules; numeric and date parsing is row-scoped and
// lives in coerce.go.

// StockPriceRow is one row of staging.raw_stock_prices.
type StockPriceRow struct {
	ID         int64     `json:"id" db:"id"`
	Symbol     string    `json:"symbol" db:"symbol" validate:"required"`
	TradeDate  string    `json:"trade_date" db:"trade_date" validate:"required"`
	OpenPrice  string    `json:"open_price" db:"open_price"`
	HighPrice  string    `json:"high_price" db:"high_price"`
	LowPrice   string    `json:"low_price" db:"low_price"`
	ClosePrice string    `json:"close_price" db:"close_price" validate:"required"`
	Volume     string    `json:"volume" db:"volume"`
	IngestedAt time.Time `json:"ingested_at" db:"ingested_at"`
}

// NewsArticleRow is one row of staging.raw_news_articles.
type NewsArticleRow struct {
	ID             int64     `json:"id" db:"id"`
	SymbolSearched string    `json:"symbol_searched" db:"symbol_searched" validate:"required"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	URL            string    `json:"url" db:"url" validate:"required"`
	SourceName     string    `json:"source_name" db:"source_name"`
	PublishedAt    string    `json:"published_at" db:"published_at" validate:"required"`
	SentimentScore string    `json:"sentiment_score" db:"sentiment_score"`
	IngestedAt     time.Time `json:"ingested_at" db:"ingested_at"`
}

// EconRow is one row of staging.raw_econ_data.
type EconRow struct {
	ID          int64     `json:"id" db:"id"`
	SeriesID    string    `json:"series_id" db:"series_id" validate:"required"`
	SeriesDate  string    `json:"series_date" db:"series_date" validate:"required"`
	SeriesValue string    `json:"series_value" db:"series_value" validate:"required"`
	SeriesName  string    `json:"series_name" db:"series_name"`
	IngestedAt  time.Time `json:"ingested_at" db:"ingested_at"`
}

// SeriesRef is a distinct series discovered in staged economic data, carrying
// the staged display name for the dimension resolver's fallback.
type SeriesRef struct {
	SeriesID string `json:"series_id" db:"series_id"`
	Name     string `json:"series_name" db:"series_name"`
}
