package summary

// TableCounts holds post-run row counts for every table the transform owns.
type TableCounts struct {
	Dates      int64 `json:"dim_date"`
	Securities int64 `json:"dim_security"`
	Indicators int64 `json:"dim_economic_indicator"`
	Prices     int64 `json:"fact_prices"`
	News       int64 `json:"fact_news"`
	Economics  int64 `json:"fact_economics"`
}

// Breadth compares each security's latest close against its previous
// observation. Observability only; nothing downstream depends on it.
type Breadth struct {
	Gainers   int64 `json:"gainers"`
	Losers    int64 `json:"losers"`
	Unchanged int64 `json:"unchanged"`
}
