package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("transaction not found")
	ErrNegativeAmount = errors.New("amount must be a non-negative magnitude")
)

// Direction tells whether a transaction adds to or subtracts from net cash.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Account holds transactions in a single currency.
type Account struct {
	ID             uuid.UUID
	Name           string
	Institution    string
	Currency       string
	OpeningBalance decimal.Decimal
	CreatedAt      time.Time
}

// Category is a weak reference target: transactions point at it by ID and a
// rename never touches them.
type Category struct {
	ID            uuid.UUID
	Name          string
	Type          Direction
	MonthlyBudget *decimal.Decimal
	CreatedAt     time.Time
}

// Transaction is one ledger entry. Amount is a non-negative magnitude in the
// account currency; Direction carries the sign. Settled transactions are
// immutable except for category and verification corrections.
type Transaction struct {
	ID           uuid.UUID
	AccountID    *uuid.UUID
	Currency     string // account currency, loaded via JOIN
	Date         time.Time
	Amount       decimal.Decimal
	Direction    Direction
	CategoryID   *uuid.UUID
	CategoryName string // loaded via JOIN, empty when uncategorized
	Description  string
	Tags         []string
	Verified     bool
	InvoiceID    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}
