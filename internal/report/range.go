package report

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("invalid date range")

// Range is a closed date interval [Start, End].
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds a range, rejecting end < start.
func NewRange(start, end time.Time) (Range, error) {
	if end.Before(start) {
		return Range{}, ErrInvalidRange
	}

	return Range{Start: start, End: end}, nil
}

// Contains reports whether t falls within the closed interval.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// MonthRange covers [first day, last day] of the given month.
func MonthRange(year int, month time.Month) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return Range{Start: start, End: start.AddDate(0, 1, -1)}
}

// QuarterRange covers a calendar quarter (1-4).
func QuarterRange(year, quarter int) (Range, error) {
	if quarter < 1 || quarter > 4 {
		return Range{}, ErrInvalidRange
	}

	start := time.Date(year, time.Month(3*(quarter-1)+1), 1, 0, 0, 0, 0, time.UTC)

	return Range{Start: start, End: start.AddDate(0, 3, -1)}, nil
}

// YearRange covers [Jan 1, Dec 31] of the given year.
func YearRange(year int) Range {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	return Range{Start: start, End: start.AddDate(1, 0, -1)}
}

// YearToDate covers [Jan 1, asOf], capped at year end when asOf runs past it.
func YearToDate(year int, asOf time.Time) Range {
	full := YearRange(year)
	if asOf.Before(full.End) {
		full.End = asOf
	}

	return full
}
