package fx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=fx
type Repository interface {
	LatestRate(ctx context.Context, currency string, asOf time.Time) (*Rate, error)
	ListRates(ctx context.Context) ([]*Rate, error)
	UpsertRate(ctx context.Context, rate *Rate) error
}

// Service converts foreign-currency amounts into the base currency.
type Service struct {
	repo Repository
	base string
}

func NewService(repo Repository, baseCurrency string) *Service {
	return &Service{repo: repo, base: strings.ToUpper(baseCurrency)}
}

// Base returns the base currency code all normalized amounts are expressed in.
func (s *Service) Base() string {
	return s.base
}

// Normalize converts amount from currency into the base currency as of asOf,
// using the latest rate with effective date <= asOf. The result is rounded to
// minor-unit precision with round-half-even, exactly once.
func (s *Service) Normalize(ctx context.Context, amount decimal.Decimal, currency string, asOf time.Time) (decimal.Decimal, error) {
	currency = strings.ToUpper(currency)
	if currency == "" || currency == s.base {
		return money.RoundMinor(amount), nil
	}

	rate, err := s.repo.LatestRate(ctx, currency, asOf)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("looking up %s rate as of %s: %w", currency, asOf.Format(time.DateOnly), err)
	}

	return money.RoundMinor(amount.Mul(rate.RateToBase)), nil
}

// List returns all known rates ordered by currency, newest first.
func (s *Service) List(ctx context.Context) ([]*Rate, error) {
	return s.repo.ListRates(ctx)
}

type UpsertParams struct {
	Currency   string
	Date       time.Time
	RateToBase decimal.Decimal
}

// Upsert records a rate for (currency, date), replacing any existing one.
func (s *Service) Upsert(ctx context.Context, params UpsertParams) (*Rate, error) {
	if !params.RateToBase.IsPositive() {
		return nil, fmt.Errorf("rate to base must be positive, got %s", params.RateToBase)
	}

	rate := &Rate{
		Currency:   strings.ToUpper(params.Currency),
		Date:       params.Date,
		RateToBase: params.RateToBase,
	}
	if err := s.repo.UpsertRate(ctx, rate); err != nil {
		return nil, err
	}

	return rate, nil
}
