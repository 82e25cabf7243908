package fact

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestComputeDeltas_Chronology(t *testing.T) {
	// Jan 100 -> Feb 110 -> Mar 0: first observation has no predecessor,
	// Feb gains 10%, a zero value short-circuits to 0.
	observations := []Observation{
		{ID: 1, IndicatorKey: 7, DateKey: 20240101, Value: dec("100")},
		{ID: 2, IndicatorKey: 7, DateKey: 20240201, Value: dec("110")},
		{ID: 3, IndicatorKey: 7, DateKey: 20240301, Value: dec("0")},
	}

	updates := ComputeDeltas(observations)
	require.Len(t, updates, 3)

	assert.Equal(t, int64(1), updates[0].ID)
	assert.True(t, updates[0].ChangePercent.IsZero())

	assert.Equal(t, int64(2), updates[1].ID)
	assert.True(t, updates[1].ChangePercent.Equal(dec("10")), "got %s", updates[1].ChangePercent)

	assert.Equal(t, int64(3), updates[2].ID)
	assert.True(t, updates[2].ChangePercent.IsZero())
}

func TestComputeDeltas_UnsortedInput(t *testing.T) {
	observations := []Observation{
		{ID: 2, IndicatorKey: 7, DateKey: 20240201, Value: dec("110")},
		{ID: 1, IndicatorKey: 7, DateKey: 20240101, Value: dec("100")},
	}

	updates := ComputeDeltas(observations)
	require.Len(t, updates, 2)
	assert.Equal(t, int64(1), updates[0].ID)
	assert.True(t, updates[0].ChangePercent.IsZero())
	assert.True(t, updates[1].ChangePercent.Equal(dec("10")))
}

func TestComputeDeltas_PerIndicatorReset(t *testing.T) {
	// The last observation of one indicator never becomes the predecessor of
	// the next indicator's first observation.
	observations := []Observation{
		{ID: 1, IndicatorKey: 1, DateKey: 20240101, Value: dec("200")},
		{ID: 2, IndicatorKey: 2, DateKey: 20240201, Value: dec("100")},
	}

	updates := ComputeDeltas(observations)
	require.Len(t, updates, 2)
	assert.True(t, updates[0].ChangePercent.IsZero())
	assert.True(t, updates[1].ChangePercent.IsZero())
}

func TestComputeDeltas_NearestPriorNotCalendarOffset(t *testing.T) {
	// A quarterly series: the predecessor is the previous observation,
	// however far back it sits.
	observations := []Observation{
		{ID: 1, IndicatorKey: 3, DateKey: 20230101, Value: dec("1000")},
		{ID: 2, IndicatorKey: 3, DateKey: 20230401, Value: dec("1050")},
	}

	updates := ComputeDeltas(observations)
	require.Len(t, updates, 2)
	assert.True(t, updates[1].ChangePercent.Equal(dec("5")), "got %s", updates[1].ChangePercent)
}

func TestComputeDeltas_SkipsComputedButAdvancesPredecessor(t *testing.T) {
	// The middle observation already holds a value: it gets no update but its
	// value still feeds the next delta.
	observations := []Observation{
		{ID: 1, IndicatorKey: 7, DateKey: 20240101, Value: dec("100"), ChangePercent: decPtr("0")},
		{ID: 2, IndicatorKey: 7, DateKey: 20240201, Value: dec("110"), ChangePercent: decPtr("10")},
		{ID: 3, IndicatorKey: 7, DateKey: 20240301, Value: dec("121")},
	}

	updates := ComputeDeltas(observations)
	require.Len(t, updates, 1)
	assert.Equal(t, int64(3), updates[0].ID)
	assert.True(t, updates[0].ChangePercent.Equal(dec("10")), "got %s", updates[0].ChangePercent)
}

func TestComputeDeltas_ZeroPredecessor(t *testing.T) {
	observations := []Observation{
		{ID: 1, IndicatorKey: 7, DateKey: 20240101, Value: dec("0")},
		{ID: 2, IndicatorKey: 7, DateKey: 20240201, Value: dec("50")},
	}

	updates := ComputeDeltas(observations)
	require.Len(t, updates, 2)
	// Division guard: a zero predecessor yields 0, not an error.
	assert.True(t, updates[1].ChangePercent.IsZero())
}

func TestComputeDeltas_Rounding(t *testing.T) {
	observations := []Observation{
		{ID: 1, IndicatorKey: 7, DateKey: 20240101, Value: dec("3")},
		{ID: 2, IndicatorKey: 7, DateKey: 20240201, Value: dec("4")},
	}

	updates := ComputeDeltas(observations)
	require.Len(t, updates, 2)
	assert.True(t, updates[1].ChangePercent.Equal(dec("33.3333")), "got %s", updates[1].ChangePercent)
}

func TestComputeDeltas_Empty(t *testing.T) {
	assert.Empty(t, ComputeDeltas(nil))
}

func TestComputeDeltas_Idempotent(t *testing.T) {
	observations := []Observation{
		{ID: 1, IndicatorKey: 7, DateKey: 20240101, Value: dec("100")},
		{ID: 2, IndicatorKey: 7, DateKey: 20240201, Value: dec("110")},
	}

	first := ComputeDeltas(observations)
	require.Len(t, first, 2)

	// Apply the updates, then run again: nothing is pending.
	for _, u := range first {
		for i := range observations {
			if observations[i].ID == u.ID {
				cp := u.ChangePercent
				observations[i].ChangePercent = &cp
			}
		}
	}
	assert.Empty(t, ComputeDeltas(observations))
}
