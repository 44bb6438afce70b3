package fx

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrRateNotFound means no exchange rate exists on or before the requested
// date for the currency. Callers must surface it, never substitute a rate.
var ErrRateNotFound = errors.New("exchange rate not found")

// Rate is one conversion rate to the base currency, effective from Date
// onward until a newer rate appears (carry-forward lookup).
type Rate struct {
	ID         uuid.UUID
	Currency   string
	Date       time.Time
	RateToBase decimal.Decimal
	CreatedAt  time.Time
}
