package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
)

// Uncategorized is the synthetic bucket for expenses without a category.
const Uncategorized = "Uncategorized"

// CategoryShare is one row of a category breakdown.
type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Percentage float64
	Count      int
}

// Breakdown groups the expense transactions by category, ranked by amount
// descending with ties broken by category name ascending. It always returns
// the full ranked list; truncation to a top-N view is the caller's concern.
func (e *Engine) Breakdown(ctx context.Context, txs []*ledger.Transaction) ([]CategoryShare, error) {
	type group struct {
		amount decimal.Decimal
		count  int
	}

	groups := make(map[string]*group)
	total := decimal.Zero

	for _, tx := range txs {
		if tx.Direction != ledger.DirectionExpense {
			continue
		}

		amt, err := e.fx.Normalize(ctx, tx.Amount, tx.Currency, tx.Date)
		if err != nil {
			return nil, fmt.Errorf("normalizing transaction %s: %w", tx.ID, err)
		}

		name := tx.CategoryName
		if name == "" {
			name = Uncategorized
		}

		g, ok := groups[name]
		if !ok {
			g = &group{amount: decimal.Zero}
			groups[name] = g
		}

		g.amount = g.amount.Add(amt)
		g.count++
		total = total.Add(amt)
	}

	shares := make([]CategoryShare, 0, len(groups))

	for name, g := range groups {
		share := CategoryShare{Category: name, Amount: g.amount, Count: g.count}
		if total.IsPositive() {
			pct, _ := g.amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
			share.Percentage = pct
		}

		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Amount.Equal(shares[j].Amount) {
			return shares[i].Amount.GreaterThan(shares[j].Amount)
		}

		return shares[i].Category < shares[j].Category
	})

	return shares, nil
}
