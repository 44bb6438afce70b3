// Package treasury projects future net cash flow from historical monthly
// rollups. The projection is a deliberately simple linear trend: the consumer
// is a dashboard hint, not a financial commitment.
package treasury

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/money"
	"github.com/MrJamesThe3rd/ledgerd/internal/report"
)

//go:generate mockgen -source=treasury.go -destination=rollup_mock.go -package=treasury
type RollupSource interface {
	Rollup(ctx context.Context, scope report.Scope, rng report.Range) (report.Rollup, error)
}

// MonthlyNet is the net cash flow of one calendar month.
type MonthlyNet struct {
	Month time.Time // first day of the month
	Net   decimal.Decimal
}

// Projection keeps observed history and forecast strictly separate.
type Projection struct {
	History  []MonthlyNet
	Forecast []decimal.Decimal
}

type Service struct {
	rollups  RollupSource
	lookback int
}

func NewService(rollups RollupSource, lookback int) *Service {
	return &Service{rollups: rollups, lookback: lookback}
}

// MonthlyNetHistory rolls up each of the `months` calendar months ending with
// the month containing `through`, in chronological order.
func (s *Service) MonthlyNetHistory(ctx context.Context, through time.Time, months int) ([]MonthlyNet, error) {
	history := make([]MonthlyNet, 0, months)

	// Step from the first of the month; stepping from `through` itself would
	// let AddDate's day normalization skip short months (Mar 31 - 1 month is
	// "Feb 31", which becomes Mar 2).
	anchor := time.Date(through.Year(), through.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := months - 1; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0)
		rng := report.MonthRange(month.Year(), month.Month())

		rollup, err := s.rollups.Rollup(ctx, report.Scope{}, rng)
		if err != nil {
			return nil, fmt.Errorf("rolling up %s: %w", rng.Start.Format("2006-01"), err)
		}

		history = append(history, MonthlyNet{Month: rng.Start, Net: rollup.Net})
	}

	return history, nil
}

// Project builds the monthly history and forecasts `horizon` months ahead.
func (s *Service) Project(ctx context.Context, through time.Time, months, horizon int) (Projection, error) {
	history, err := s.MonthlyNetHistory(ctx, through, months)
	if err != nil {
		return Projection{}, err
	}

	return Projection{
		History:  history,
		Forecast: Forecast(history, horizon, s.lookback),
	}, nil
}

// Forecast projects `horizon` net values past the end of history by adding
// the least-squares slope of the trailing window to the last observed value.
// Fewer than 2 historical points yields an empty forecast; that is "no data"
// for the caller, not an error.
func Forecast(history []MonthlyNet, horizon, lookback int) []decimal.Decimal {
	if len(history) < 2 || horizon <= 0 {
		return nil
	}

	window := history
	if lookback > 1 && len(window) > lookback {
		window = window[len(window)-lookback:]
	}

	ys := make([]float64, len(window))
	for i, m := range window {
		ys[i], _ = m.Net.Float64()
	}

	slope := leastSquaresSlope(ys)
	last := ys[len(ys)-1]

	forecast := make([]decimal.Decimal, horizon)
	for i := range forecast {
		forecast[i] = money.RoundMinor(decimal.NewFromFloat(last + slope*float64(i+1)))
	}

	return forecast
}

// leastSquaresSlope fits y = a + b*x over x = 0..n-1 and returns b.
func leastSquaresSlope(ys []float64) float64 {
	n := float64(len(ys))

	var sumX, sumY, sumXY, sumX2 float64

	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}

	return (n*sumXY - sumX*sumY) / denom
}
