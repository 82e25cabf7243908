package fact

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Observation is an economic fact projected for delta computation.
// ChangePercent mirrors the fact row: nil while the delta is pending.
type Observation struct {
	ID            int64
	IndicatorKey  int64
	DateKey       int
	Value         decimal.Decimal
	ChangePercent *decimal.Decimal
}

// DeltaUpdate assigns a computed percent change to a pending observation.
type DeltaUpdate struct {
	ID            int64
	ChangePercent decimal.Decimal
}

// ComputeDeltas walks each indicator's observations in chronological order
// and produces updates for every observation whose change percent is still
// pending. The predecessor is the nearest strictly earlier observation of the
// same indicator, whatever the reporting cadence; a fixed calendar offset
// would silently skip weekly or quarterly series.
//
// Guards: an observation with no predecessor, a zero predecessor, or a zero
// value itself gets a terminal 0. Observations already computed are never
// touched but still advance the predecessor state.
func ComputeDeltas(observations []Observation) []DeltaUpdate {
	sorted := make([]Observation, len(observations))
	copy(sorted, observations)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].IndicatorKey != sorted[j].IndicatorKey {
			return sorted[i].IndicatorKey < sorted[j].IndicatorKey
		}
		return sorted[i].DateKey < sorted[j].DateKey
	})

	var updates []DeltaUpdate
	var prev *decimal.Decimal
	currentIndicator := int64(-1)

	for i := range sorted {
		obs := sorted[i]
		if obs.IndicatorKey != currentIndicator {
			currentIndicator = obs.IndicatorKey
			prev = nil
		}

		if obs.ChangePercent == nil {
			updates = append(updates, DeltaUpdate{
				ID:            obs.ID,
				ChangePercent: percentChange(prev, obs.Value),
			})
		}

		v := obs.Value
		prev = &v
	}

	return updates
}

func percentChange(prev *decimal.Decimal, current decimal.Decimal) decimal.Decimal {
	if prev == nil || prev.IsZero() || current.IsZero() {
		return decimal.Zero
	}
	return current.Sub(*prev).Div(*prev).Mul(hundred).Round(4)
}
