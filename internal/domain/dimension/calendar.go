package dimension

import (
	"time"
)

// DateKey encodes a calendar date as yyyymmdd. It is deterministic and total,
// which is what makes the calendar build idempotent without an existence
// check: the same day always maps to the same key.
func DateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// Quarter returns the calendar quarter (1..4) for a month.
func Quarter(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// NewDate builds the full dimension row for a single calendar day.
// The holiday flag is a stub and stays false.
func NewDate(t time.Time) Date {
	t = t.UTC().Truncate(24 * time.Hour)
	wd := t.Weekday()
	return Date{
		DateKey:   DateKey(t),
		FullDate:  t,
		DayName:   wd.String(),
		MonthName: t.Month().String(),
		MonthNum:  int(t.Month()),
		Quarter:   Quarter(t.Month()),
		Year:      t.Year(),
		IsWeekend: wd == time.Saturday || wd == time.Sunday,
		IsHoliday: false,
	}
}

// BuildCalendar generates one Date row per calendar day in [start, end],
// inclusive on both ends. It is a pure function over the horizon; callers
// decide what to do with days that already exist in the dimension.
func BuildCalendar(start, end time.Time) []Date {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return nil
	}

	days := int(end.Sub(start).Hours()/24) + 1
	dates := make([]Date, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, NewDate(d))
	}
	return dates
}
