package transform

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/finmart/warehouse/internal/domain/dimension"
)

// buildCalendar populates dim_date for the configured horizon. The generator
// is pure and the date key deterministic, so re-running over an overlapping
// horizon only inserts the days not yet present.
func (s *Service) buildCalendar(ctx context.Context, st Stores) (CalendarResult, error) {
	start, end := s.horizon.Start, s.horizon.End
	if end.Before(start) {
		return CalendarResult{}, fmt.Errorf("%w: %s after %s",
			dimension.ErrInvalidHorizon, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	generated := dimension.BuildCalendar(start, end)

	existing, err := st.Dates.ExistingKeys(ctx)
	if err != nil {
		return CalendarResult{}, fmt.Errorf("load existing date keys: %w", err)
	}

	missing := make([]dimension.Date, 0, len(generated))
	for _, d := range generated {
		if _, ok := existing[d.DateKey]; !ok {
			missing = append(missing, d)
		}
	}

	inserted, err := st.Dates.InsertBatch(ctx, missing)
	if err != nil {
		return CalendarResult{}, fmt.Errorf("insert calendar days: %w", err)
	}

	log.Info().
		Int("generated", len(generated)).
		Int("existing", len(existing)).
		Int("inserted", inserted).
		Msg("✅ Calendar dimension up to date")

	return CalendarResult{
		Generated: len(generated),
		Existing:  len(existing),
		Inserted:  inserted,
	}, nil
}
