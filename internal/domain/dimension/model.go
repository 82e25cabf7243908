package dimension

import (
	"time"
)

// Date is one row of the analytics.dim_date calendar dimension.
// The key is a pure function of the calendar date (see DateKey), so repeated
// calendar builds can never mint a second key for the same day.
type Date struct {
	DateKey   int       `json:"date_key" db:"date_key"`
	FullDate  time.Time `json:"full_date" db:"full_date"`
	DayName   string    `json:"day_name" db:"day_name"`
	MonthName string    `json:"month_name" db:"month_name"`
	MonthNum  int       `json:"month_num" db:"month_num"`
	Quarter   int       `json:"quarter" db:"quarter"`
	Year      int       `json:"year" db:"year"`
	IsWeekend bool      `json:"is_weekend" db:"is_weekend"`
	IsHoliday bool      `json:"is_holiday" db:"is_holiday"` // extension point, currently always false
}

// Security is one row of analytics.dim_security.
// SecurityKey is the database-assigned surrogate; Symbol is the natural key
// and is unique for the lifetime of the dimension.
type Security struct {
	SecurityKey int64  `json:"security_key" db:"security_key"`
	Symbol      string `json:"symbol" db:"symbol"`
	CompanyName string `json:"company_name" db:"company_name"`
	Sector      string `json:"sector" db:"sector"`
	Industry    string `json:"industry" db:"industry"`
	MarketCap   int64  `json:"market_cap" db:"market_cap"`
}

// Indicator is one row of analytics.dim_economic_indicator.
// SeriesID is the natural key (FRED-style series identifier).
type Indicator struct {
	IndicatorKey int64  `json:"indicator_key" db:"indicator_key"`
	SeriesID     string `json:"series_id" db:"series_id"`
	Name         string `json:"indicator_name" db:"indicator_name"`
	Description  string `json:"description" db:"description"`
	Units        string `json:"units" db:"units"`
	Frequency    string `json:"frequency" db:"frequency"`
}
