package staging

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Timestamp layouts seen in staged data. Trade and series dates arrive as
// bare dates; news timestamps arrive as RFC3339 or a space-separated variant.
var (
	dateLayouts = []string{"2006-01-02", "2006/01/02"}
	timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}
)

// ParseDate coerces a staged date string to a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrBadRow)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrBadRow, s)
}

// ParseTimestamp coerces a staged timestamp string, falling back to bare-date
// layouts for feeds that strip the time component.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrBadRow)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return ParseDate(s)
}

// ParsePrice coerces a staged price string to a 2-decimal amount.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}

// ParseSeriesValue coerces a staged economic value to a 4-decimal amount.
func ParseSeriesValue(s string) (decimal.Decimal, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(4), nil
}

// ParseVolume coerces a staged volume string to a non-negative integer.
func ParseVolume(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unparseable volume %q", ErrBadRow, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative volume %d", ErrBadRow, v)
	}
	return v, nil
}

// ParseSentiment coerces an optional sentiment score. An empty value is not
// an error; the fact row simply carries no score.
func ParseSentiment(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable sentiment %q", ErrBadRow, s)
	}
	return &v, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return decimal.Zero, fmt.Errorf("%w: empty numeric value", ErrBadRow)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: unparseable numeric value %q", ErrBadRow, s)
	}
	return d, nil
}
