package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerd/internal/report"
)

// passthroughFX treats every amount as already being in the base currency.
func passthroughFX(m *report.MockNormalizer) {
	m.EXPECT().
		Normalize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, amount decimal.Decimal, _ string, _ time.Time) (decimal.Decimal, error) {
			return amount, nil
		}).
		AnyTimes()
}

func tx(dateStr, amount string, direction ledger.Direction, category string) *ledger.Transaction {
	d, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		panic(err)
	}

	return &ledger.Transaction{
		ID:           uuid.New(),
		Date:         d,
		Amount:       decimal.RequireFromString(amount),
		Direction:    direction,
		CategoryName: category,
		Description:  category,
	}
}

// serveTransactions answers every List call by filtering the fixture set with
// the requested date bounds, like the store would.
func serveTransactions(m *report.MockTransactionSource, txs []*ledger.Transaction) {
	m.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
			var out []*ledger.Transaction

			for _, t := range txs {
				if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
					continue
				}

				if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
					continue
				}

				out = append(out, t)
			}

			return out, nil
		}).
		AnyTimes()
}

func TestEngine_Rollup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockTransactionSource(ctrl)
	fx := report.NewMockNormalizer(ctrl)
	passthroughFX(fx)

	serveTransactions(source, []*ledger.Transaction{
		tx("2024-01-05", "1000", ledger.DirectionIncome, "Salary"),
		tx("2024-01-10", "300", ledger.DirectionExpense, "Food"),
		tx("2024-01-20", "200", ledger.DirectionExpense, "Rent"),
		tx("2024-02-01", "9999", ledger.DirectionExpense, "OutOfRange"),
	})

	engine := report.NewEngine(source, fx)

	rollup, err := engine.Rollup(context.Background(), report.Scope{}, report.MonthRange(2024, time.January))
	require.NoError(t, err)

	assert.True(t, rollup.Income.Equal(decimal.RequireFromString("1000")), "income %s", rollup.Income)
	assert.True(t, rollup.Expense.Equal(decimal.RequireFromString("500")), "expense %s", rollup.Expense)
	assert.True(t, rollup.Net.Equal(decimal.RequireFromString("500")), "net %s", rollup.Net)
}

func TestEngine_Rollup_Additive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockTransactionSource(ctrl)
	fx := report.NewMockNormalizer(ctrl)
	passthroughFX(fx)

	serveTransactions(source, []*ledger.Transaction{
		tx("2024-01-05", "1000", ledger.DirectionIncome, "Salary"),
		tx("2024-01-10", "300", ledger.DirectionExpense, "Food"),
		tx("2024-01-20", "200", ledger.DirectionExpense, "Rent"),
	})

	engine := report.NewEngine(source, fx)
	ctx := context.Background()

	firstHalf, err := report.NewRange(date(2024, 1, 1), date(2024, 1, 15))
	require.NoError(t, err)
	secondHalf, err := report.NewRange(date(2024, 1, 16), date(2024, 1, 31))
	require.NoError(t, err)

	whole, err := engine.Rollup(ctx, report.Scope{}, report.MonthRange(2024, time.January))
	require.NoError(t, err)
	first, err := engine.Rollup(ctx, report.Scope{}, firstHalf)
	require.NoError(t, err)
	second, err := engine.Rollup(ctx, report.Scope{}, secondHalf)
	require.NoError(t, err)

	// rollups over a partition of the range sum to the whole
	assert.True(t, whole.Income.Equal(first.Income.Add(second.Income)))
	assert.True(t, whole.Expense.Equal(first.Expense.Add(second.Expense)))
	assert.True(t, whole.Net.Equal(first.Net.Add(second.Net)))
}

func TestEngine_Rollup_InvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := report.NewEngine(report.NewMockTransactionSource(ctrl), report.NewMockNormalizer(ctrl))

	_, err := engine.Rollup(context.Background(), report.Scope{}, report.Range{
		Start: date(2024, 2, 1),
		End:   date(2024, 1, 1),
	})
	assert.ErrorIs(t, err, report.ErrInvalidRange)
}

func TestEngine_Rollup_SourceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockTransactionSource(ctrl)
	source.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	engine := report.NewEngine(source, report.NewMockNormalizer(ctrl))

	_, err := engine.Rollup(context.Background(), report.Scope{}, report.MonthRange(2024, time.January))
	assert.Error(t, err)
}

func TestEngine_Breakdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := report.NewMockNormalizer(ctrl)
	passthroughFX(fx)

	engine := report.NewEngine(report.NewMockTransactionSource(ctrl), fx)

	txs := []*ledger.Transaction{
		tx("2024-01-05", "1000", ledger.DirectionIncome, "Salary"), // income never appears
		tx("2024-01-10", "100", ledger.DirectionExpense, "Food"),
		tx("2024-01-12", "200", ledger.DirectionExpense, "Food"),
		tx("2024-01-20", "200", ledger.DirectionExpense, "Rent"),
	}

	shares, err := engine.Breakdown(context.Background(), txs)
	require.NoError(t, err)
	require.Len(t, shares, 2)

	assert.Equal(t, "Food", shares[0].Category)
	assert.True(t, shares[0].Amount.Equal(decimal.RequireFromString("300")))
	assert.Equal(t, 60.0, shares[0].Percentage)
	assert.Equal(t, 2, shares[0].Count)

	assert.Equal(t, "Rent", shares[1].Category)
	assert.Equal(t, 40.0, shares[1].Percentage)
	assert.Equal(t, 1, shares[1].Count)
}

func TestEngine_Breakdown_Uncategorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := report.NewMockNormalizer(ctrl)
	passthroughFX(fx)

	engine := report.NewEngine(report.NewMockTransactionSource(ctrl), fx)

	shares, err := engine.Breakdown(context.Background(), []*ledger.Transaction{
		tx("2024-01-10", "50", ledger.DirectionExpense, ""),
	})
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, report.Uncategorized, shares[0].Category)
	assert.Equal(t, 100.0, shares[0].Percentage)
}

func TestEngine_Breakdown_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := report.NewEngine(report.NewMockTransactionSource(ctrl), report.NewMockNormalizer(ctrl))

	shares, err := engine.Breakdown(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, shares)
}

func TestEngine_Series(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockTransactionSource(ctrl)
	fx := report.NewMockNormalizer(ctrl)
	passthroughFX(fx)

	serveTransactions(source, []*ledger.Transaction{
		tx("2024-01-01", "100", ledger.DirectionIncome, "Salary"),
		tx("2024-01-03", "40", ledger.DirectionExpense, "Food"),
	})

	engine := report.NewEngine(source, fx)

	rng, err := report.NewRange(date(2024, 1, 1), date(2024, 1, 3))
	require.NoError(t, err)

	points, err := engine.Series(context.Background(), report.Scope{}, rng, report.BucketDay)
	require.NoError(t, err)
	require.Len(t, points, 3)

	// day 1: +100
	assert.Equal(t, date(2024, 1, 1), points[0].BucketStart)
	assert.True(t, points[0].Income.Equal(decimal.RequireFromString("100")))
	assert.True(t, points[0].Balance.Equal(decimal.RequireFromString("100")))

	// day 2: empty bucket still emitted
	assert.True(t, points[1].Income.IsZero())
	assert.True(t, points[1].Expense.IsZero())
	assert.True(t, points[1].Balance.Equal(decimal.RequireFromString("100")))

	// day 3: -40, running balance 60
	assert.True(t, points[2].Expense.Equal(decimal.RequireFromString("40")))
	assert.True(t, points[2].Balance.Equal(decimal.RequireFromString("60")))
}

func TestEngine_Series_MonthBucketsAlignToCalendar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := report.NewMockTransactionSource(ctrl)
	fx := report.NewMockNormalizer(ctrl)
	passthroughFX(fx)
	serveTransactions(source, nil)

	engine := report.NewEngine(source, fx)

	rng, err := report.NewRange(date(2024, 1, 15), date(2024, 3, 10))
	require.NoError(t, err)

	points, err := engine.Series(context.Background(), report.Scope{}, rng, report.BucketMonth)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, date(2024, 1, 15), points[0].BucketStart)
	assert.Equal(t, date(2024, 2, 1), points[1].BucketStart)
	assert.Equal(t, date(2024, 3, 1), points[2].BucketStart)
}

func TestEngine_Series_UnknownBucket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := report.NewEngine(report.NewMockTransactionSource(ctrl), report.NewMockNormalizer(ctrl))

	_, err := engine.Series(context.Background(), report.Scope{}, report.MonthRange(2024, time.January), report.Bucket("hour"))
	assert.Error(t, err)
}

func TestEngine_KPIs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := report.NewMockNormalizer(ctrl)
	passthroughFX(fx)

	engine := report.NewEngine(report.NewMockTransactionSource(ctrl), fx)

	kpis, err := engine.KPIs(context.Background(), []*ledger.Transaction{
		tx("2024-01-05", "1000", ledger.DirectionIncome, "Salary"),
		tx("2024-01-10", "300", ledger.DirectionExpense, "Food"),
		tx("2024-01-20", "200", ledger.DirectionExpense, "Rent"),
	})
	require.NoError(t, err)

	assert.True(t, kpis.Net.Equal(decimal.RequireFromString("500")))
	assert.Equal(t, 50.0, kpis.SavingsRate)

	require.NotNil(t, kpis.LargestIncome)
	assert.Equal(t, "Salary", kpis.LargestIncome.Description)

	require.NotNil(t, kpis.LargestExpense)
	assert.Equal(t, "Food", kpis.LargestExpense.Description)
}

func TestEngine_KPIs_NoIncome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := report.NewMockNormalizer(ctrl)
	passthroughFX(fx)

	engine := report.NewEngine(report.NewMockTransactionSource(ctrl), fx)

	kpis, err := engine.KPIs(context.Background(), []*ledger.Transaction{
		tx("2024-01-10", "300", ledger.DirectionExpense, "Food"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, kpis.SavingsRate)
	assert.Nil(t, kpis.LargestIncome)
}
