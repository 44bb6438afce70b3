package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context) ([]*Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type TransactionSource interface {
	List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error)
}

type Normalizer interface {
	Normalize(ctx context.Context, amount decimal.Decimal, currency string, asOf time.Time) (decimal.Decimal, error)
}

// Consumption is the computed spend against a budget. Consumed and Remaining
// are unclamped (Remaining may be negative); only Percentage is capped at 100
// for display.
type Consumption struct {
	Consumed   decimal.Decimal
	Remaining  decimal.Decimal
	Percentage int
}

type Service struct {
	repo   Repository
	source TransactionSource
	fx     Normalizer
}

func NewService(repo Repository, source TransactionSource, fx Normalizer) *Service {
	return &Service{repo: repo, source: source, fx: fx}
}

type CreateParams struct {
	Name       string
	Period     Period
	Start      time.Time
	End        time.Time
	Total      decimal.Decimal
	CategoryID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if params.End.Before(params.Start) {
		return nil, fmt.Errorf("budget end %s before start %s", params.End.Format(time.DateOnly), params.Start.Format(time.DateOnly))
	}

	b := &Budget{
		Name:       params.Name,
		Period:     params.Period,
		Start:      params.Start,
		End:        params.End,
		Total:      params.Total,
		CategoryID: params.CategoryID,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}

// Consumption sums normalized expense transactions inside the budget window,
// category-scoped when the budget is tied to a category.
func (s *Service) Consumption(ctx context.Context, b *Budget) (Consumption, error) {
	direction := ledger.DirectionExpense

	txs, err := s.source.List(ctx, ledger.ListFilter{
		StartDate:  &b.Start,
		EndDate:    &b.End,
		Direction:  &direction,
		CategoryID: b.CategoryID,
	})
	if err != nil {
		return Consumption{}, fmt.Errorf("listing budget transactions: %w", err)
	}

	consumed := decimal.Zero

	for _, tx := range txs {
		amt, err := s.fx.Normalize(ctx, tx.Amount, tx.Currency, tx.Date)
		if err != nil {
			return Consumption{}, fmt.Errorf("normalizing transaction %s: %w", tx.ID, err)
		}

		consumed = consumed.Add(amt)
	}

	return newConsumption(b.Total, consumed), nil
}

func newConsumption(total, consumed decimal.Decimal) Consumption {
	c := Consumption{
		Consumed:  consumed,
		Remaining: total.Sub(consumed),
	}

	if total.IsPositive() {
		pct := int(consumed.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		if pct > 100 {
			pct = 100
		}

		c.Percentage = pct
	}

	return c
}

// BudgetConsumption pairs a budget with its computed consumption.
type BudgetConsumption struct {
	Budget      *Budget
	Consumption Consumption
}

// AnnualSummary aggregates every budget whose window intersects the year.
type AnnualSummary struct {
	Year      int
	Total     decimal.Decimal
	Consumed  decimal.Decimal
	Remaining decimal.Decimal
	Budgets   []BudgetConsumption
}

// AnnualRollup sums all budgets intersecting the calendar year. A budget is
// included whole or excluded by the window-intersection test; partial
// overlaps are not pro-rated.
func (s *Service) AnnualRollup(ctx context.Context, year int) (AnnualSummary, error) {
	budgets, err := s.repo.ListBudgets(ctx)
	if err != nil {
		return AnnualSummary{}, fmt.Errorf("listing budgets: %w", err)
	}

	summary := AnnualSummary{
		Year:     year,
		Total:    decimal.Zero,
		Consumed: decimal.Zero,
	}

	for _, b := range budgets {
		if !b.IntersectsYear(year) {
			continue
		}

		consumption, err := s.Consumption(ctx, b)
		if err != nil {
			return AnnualSummary{}, err
		}

		summary.Total = summary.Total.Add(b.Total)
		summary.Consumed = summary.Consumed.Add(consumption.Consumed)
		summary.Budgets = append(summary.Budgets, BudgetConsumption{Budget: b, Consumption: consumption})
	}

	summary.Remaining = summary.Total.Sub(summary.Consumed)

	return summary, nil
}
