// Package report computes period rollups, category breakdowns and trend
// series over the ledger. Every amount is normalized to the base currency
// before it is summed; the engine holds no mutable state and is safe for
// concurrent use.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type TransactionSource interface {
	List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error)
}

type Normalizer interface {
	Normalize(ctx context.Context, amount decimal.Decimal, currency string, asOf time.Time) (decimal.Decimal, error)
}

// Scope narrows a rollup to one account and/or category. Zero value means
// the whole ledger.
type Scope struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
}

// Rollup is the aggregated totals over a range. Income and Expense are
// non-negative magnitudes; Net = Income - Expense.
type Rollup struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

type Engine struct {
	source TransactionSource
	fx     Normalizer
}

func NewEngine(source TransactionSource, fx Normalizer) *Engine {
	return &Engine{source: source, fx: fx}
}

// Rollup sums normalized amounts of all in-scope transactions whose date
// falls within the closed range. The underlying store read runs on a single
// snapshot, so concurrent inserts are either fully visible or not at all.
func (e *Engine) Rollup(ctx context.Context, scope Scope, rng Range) (Rollup, error) {
	if rng.End.Before(rng.Start) {
		return Rollup{}, ErrInvalidRange
	}

	txs, err := e.source.List(ctx, ledger.ListFilter{
		StartDate:  &rng.Start,
		EndDate:    &rng.End,
		AccountID:  scope.AccountID,
		CategoryID: scope.CategoryID,
	})
	if err != nil {
		return Rollup{}, fmt.Errorf("listing transactions for rollup: %w", err)
	}

	return e.sum(ctx, txs)
}

func (e *Engine) sum(ctx context.Context, txs []*ledger.Transaction) (Rollup, error) {
	income := decimal.Zero
	expense := decimal.Zero

	for _, tx := range txs {
		amt, err := e.fx.Normalize(ctx, tx.Amount, tx.Currency, tx.Date)
		if err != nil {
			return Rollup{}, fmt.Errorf("normalizing transaction %s: %w", tx.ID, err)
		}

		switch tx.Direction {
		case ledger.DirectionIncome:
			income = income.Add(amt)
		case ledger.DirectionExpense:
			expense = expense.Add(amt)
		}
	}

	return Rollup{Income: income, Expense: expense, Net: income.Sub(expense)}, nil
}
