// Package dashboard assembles the bundle the UI renders in one request:
// KPIs, trend series, category breakdown and unresolved alerts. It performs
// no aggregation of its own.
package dashboard

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/ledgerd/internal/alert"
	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerd/internal/report"
)

type AlertSource interface {
	List(ctx context.Context, includeResolved bool) ([]*alert.Alert, error)
}

type Bundle struct {
	Range     report.Range
	KPIs      report.KPIs
	Breakdown []report.CategoryShare
	Trends    []report.TrendPoint
	Alerts    []*alert.Alert
}

type Service struct {
	transactions report.TransactionSource
	engine       *report.Engine
	alerts       AlertSource
}

func NewService(transactions report.TransactionSource, engine *report.Engine, alerts AlertSource) *Service {
	return &Service{transactions: transactions, engine: engine, alerts: alerts}
}

func (s *Service) Bundle(ctx context.Context, rng report.Range, bucket report.Bucket) (*Bundle, error) {
	txs, err := s.transactions.List(ctx, ledger.ListFilter{StartDate: &rng.Start, EndDate: &rng.End})
	if err != nil {
		return nil, fmt.Errorf("listing dashboard transactions: %w", err)
	}

	kpis, err := s.engine.KPIs(ctx, txs)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.engine.Breakdown(ctx, txs)
	if err != nil {
		return nil, err
	}

	trends, err := s.engine.Series(ctx, report.Scope{}, rng, bucket)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alerts.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing open alerts: %w", err)
	}

	return &Bundle{
		Range:     rng,
		KPIs:      kpis,
		Breakdown: breakdown,
		Trends:    trends,
		Alerts:    alerts,
	}, nil
}
