package orders

import (
	"fmt"
	"time"
)

// MonthWindow returns the first and last instant of the calendar month in loc.
// Both bounds are inclusive.
func MonthWindow(year, month int, loc *time.Location) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d out of range", ErrInvalidInput, month)
	}
	if year < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year %d out of range", ErrInvalidInput, year)
	}
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}
