package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("budget not found")

// Period is the nominal cadence of a budget. It is descriptive only; the
// window that consumption is computed over is always [Start, End].
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// Budget caps spending over a date window. Total is in the base currency.
// When CategoryID is set consumption is scoped to that category, otherwise
// it is account-wide.
type Budget struct {
	ID         uuid.UUID
	Name       string
	Period     Period
	Start      time.Time
	End        time.Time
	Total      decimal.Decimal
	CategoryID *uuid.UUID
	CreatedAt  time.Time
}

// IntersectsYear reports whether the budget window touches the calendar
// year. Budgets are included whole or not at all; no pro-rating.
func (b *Budget) IntersectsYear(year int) bool {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	return !b.Start.After(yearEnd) && !b.End.Before(yearStart)
}
