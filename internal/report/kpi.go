package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
)

// TransactionRef points at a notable transaction in a KPI summary.
type TransactionRef struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// KPIs are the headline figures of a dashboard period.
type KPIs struct {
	Income         decimal.Decimal
	Expense        decimal.Decimal
	Net            decimal.Decimal
	SavingsRate    float64
	LargestIncome  *TransactionRef
	LargestExpense *TransactionRef
}

// KPIs computes the headline figures over an already-fetched transaction set.
func (e *Engine) KPIs(ctx context.Context, txs []*ledger.Transaction) (KPIs, error) {
	var kpis KPIs

	kpis.Income = decimal.Zero
	kpis.Expense = decimal.Zero

	var largestIncome, largestExpense decimal.Decimal

	for _, tx := range txs {
		amt, err := e.fx.Normalize(ctx, tx.Amount, tx.Currency, tx.Date)
		if err != nil {
			return KPIs{}, fmt.Errorf("normalizing transaction %s: %w", tx.ID, err)
		}

		ref := &TransactionRef{Description: tx.Description, Amount: amt, Date: tx.Date}

		switch tx.Direction {
		case ledger.DirectionIncome:
			kpis.Income = kpis.Income.Add(amt)

			if kpis.LargestIncome == nil || amt.GreaterThan(largestIncome) {
				kpis.LargestIncome = ref
				largestIncome = amt
			}
		case ledger.DirectionExpense:
			kpis.Expense = kpis.Expense.Add(amt)

			if kpis.LargestExpense == nil || amt.GreaterThan(largestExpense) {
				kpis.LargestExpense = ref
				largestExpense = amt
			}
		}
	}

	kpis.Net = kpis.Income.Sub(kpis.Expense)

	if kpis.Income.IsPositive() {
		rate, _ := kpis.Net.Div(kpis.Income).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		kpis.SavingsRate = rate
	}

	return kpis, nil
}
