package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerd/internal/budget"
	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func passthroughFX(m *budget.MockNormalizer) {
	m.EXPECT().
		Normalize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, amount decimal.Decimal, _ string, _ time.Time) (decimal.Decimal, error) {
			return amount, nil
		}).
		AnyTimes()
}

func expenses(amounts ...string) []*ledger.Transaction {
	txs := make([]*ledger.Transaction, len(amounts))
	for i, a := range amounts {
		txs[i] = &ledger.Transaction{
			ID:        uuid.New(),
			Date:      date(2024, 1, 10),
			Amount:    decimal.RequireFromString(a),
			Direction: ledger.DirectionExpense,
		}
	}

	return txs
}

func TestService_Create_RejectsInvertedWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := budget.NewService(budget.NewMockRepository(ctrl), budget.NewMockTransactionSource(ctrl), budget.NewMockNormalizer(ctrl))

	_, err := svc.Create(context.Background(), budget.CreateParams{
		Name:  "Groceries",
		Start: date(2024, 2, 1),
		End:   date(2024, 1, 1),
		Total: decimal.RequireFromString("500"),
	})
	assert.Error(t, err)
}

func TestService_Consumption(t *testing.T) {
	type testCase struct {
		name           string
		total          string
		spent          []string
		wantConsumed   string
		wantRemaining  string
		wantPercentage int
	}

	tests := []testCase{
		{
			name:           "PartiallyConsumed",
			total:          "500",
			spent:          []string{"100", "150"},
			wantConsumed:   "250",
			wantRemaining:  "250",
			wantPercentage: 50,
		},
		{
			name:           "OverspendClampsPercentageOnly",
			total:          "100",
			spent:          []string{"150"},
			wantConsumed:   "150",
			wantRemaining:  "-50",
			wantPercentage: 100,
		},
		{
			name:           "ZeroTotal",
			total:          "0",
			spent:          []string{"150"},
			wantConsumed:   "150",
			wantRemaining:  "-150",
			wantPercentage: 0,
		},
		{
			name:           "NothingSpent",
			total:          "500",
			spent:          nil,
			wantConsumed:   "0",
			wantRemaining:  "500",
			wantPercentage: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := budget.NewMockTransactionSource(ctrl)
			source.EXPECT().List(gomock.Any(), gomock.Any()).Return(expenses(tt.spent...), nil)

			fx := budget.NewMockNormalizer(ctrl)
			passthroughFX(fx)

			svc := budget.NewService(budget.NewMockRepository(ctrl), source, fx)

			b := &budget.Budget{
				ID:    uuid.New(),
				Name:  "Groceries",
				Start: date(2024, 1, 1),
				End:   date(2024, 1, 31),
				Total: decimal.RequireFromString(tt.total),
			}

			got, err := svc.Consumption(context.Background(), b)
			require.NoError(t, err)

			assert.True(t, got.Consumed.Equal(decimal.RequireFromString(tt.wantConsumed)), "consumed %s", got.Consumed)
			assert.True(t, got.Remaining.Equal(decimal.RequireFromString(tt.wantRemaining)), "remaining %s", got.Remaining)
			assert.Equal(t, tt.wantPercentage, got.Percentage)
		})
	}
}

func TestService_Consumption_ScopesToExpenses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := budget.NewMockTransactionSource(ctrl)
	source.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
			require.NotNil(t, filter.Direction)
			assert.Equal(t, ledger.DirectionExpense, *filter.Direction)

			return nil, nil
		})

	fx := budget.NewMockNormalizer(ctrl)
	passthroughFX(fx)

	svc := budget.NewService(budget.NewMockRepository(ctrl), source, fx)

	_, err := svc.Consumption(context.Background(), &budget.Budget{
		Start: date(2024, 1, 1),
		End:   date(2024, 1, 31),
		Total: decimal.RequireFromString("100"),
	})
	require.NoError(t, err)
}

func TestService_AnnualRollup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inYear := &budget.Budget{
		ID:    uuid.New(),
		Name:  "2024 Groceries",
		Start: date(2024, 1, 1),
		End:   date(2024, 12, 31),
		Total: decimal.RequireFromString("1200"),
	}
	straddling := &budget.Budget{
		ID:    uuid.New(),
		Name:  "Winter",
		Start: date(2023, 11, 1),
		End:   date(2024, 2, 28),
		Total: decimal.RequireFromString("400"),
	}
	outside := &budget.Budget{
		ID:    uuid.New(),
		Name:  "2023 Travel",
		Start: date(2023, 1, 1),
		End:   date(2023, 12, 31),
		Total: decimal.RequireFromString("9999"),
	}

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().ListBudgets(gomock.Any()).Return([]*budget.Budget{inYear, straddling, outside}, nil)

	source := budget.NewMockTransactionSource(ctrl)
	source.EXPECT().List(gomock.Any(), gomock.Any()).Return(expenses("100"), nil).Times(2)

	fx := budget.NewMockNormalizer(ctrl)
	passthroughFX(fx)

	svc := budget.NewService(repo, source, fx)

	summary, err := svc.AnnualRollup(context.Background(), 2024)
	require.NoError(t, err)

	// straddling budget counts whole, no pro-rating
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("1600")), "total %s", summary.Total)
	assert.True(t, summary.Consumed.Equal(decimal.RequireFromString("200")), "consumed %s", summary.Consumed)
	assert.True(t, summary.Remaining.Equal(decimal.RequireFromString("1400")), "remaining %s", summary.Remaining)
	assert.Len(t, summary.Budgets, 2)
}

func TestBudget_IntersectsYear(t *testing.T) {
	b := &budget.Budget{Start: date(2023, 11, 1), End: date(2024, 2, 28)}

	assert.True(t, b.IntersectsYear(2023))
	assert.True(t, b.IntersectsYear(2024))
	assert.False(t, b.IntersectsYear(2022))
	assert.False(t, b.IntersectsYear(2025))
}
