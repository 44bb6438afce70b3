package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/budget"
	"github.com/MrJamesThe3rd/ledgerd/internal/invoice"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=alert
type Repository interface {
	// CreateAlert returns ErrConflict when an unresolved alert with the same
	// (type, subject, condition key) already exists.
	CreateAlert(ctx context.Context, a *Alert) error
	ListAlerts(ctx context.Context, includeResolved bool) ([]*Alert, error)
	OpenAlerts(ctx context.Context, typ Type) ([]*Alert, error)
	// ResolveAlert flips an unresolved alert to resolved; ErrNotFound when the
	// alert does not exist or is already resolved.
	ResolveAlert(ctx context.Context, id uuid.UUID) (*Alert, error)
}

type InvoiceSource interface {
	ListOpen(ctx context.Context) ([]*invoice.Invoice, error)
}

type BudgetSource interface {
	List(ctx context.Context) ([]*budget.Budget, error)
	Consumption(ctx context.Context, b *budget.Budget) (budget.Consumption, error)
}

// Config carries the alerting thresholds. The invoice lead time is a
// configuration value, not a constant.
type Config struct {
	InvoiceLeadDays   int
	BudgetWarnPercent int
}

// Engine evaluates alert conditions and reconciles them against the persisted
// open alerts. Scans are idempotent and re-entrant: re-running against
// unchanged data opens nothing and resolves nothing.
type Engine struct {
	repo     Repository
	invoices InvoiceSource
	budgets  BudgetSource
	cfg      Config
}

func NewEngine(repo Repository, invoices InvoiceSource, budgets BudgetSource, cfg Config) *Engine {
	return &Engine{repo: repo, invoices: invoices, budgets: budgets, cfg: cfg}
}

// ScanResult reports what one scan pass changed. Resolutions are reported,
// never silent; records stay in the store.
type ScanResult struct {
	Opened   []*Alert
	Resolved []*Alert
}

// ScanInvoicesDue opens an alert per open invoice that is due within the
// configured lead time (info) or overdue (warning), and resolves open alerts
// whose condition no longer holds (e.g. the invoice was paid).
func (e *Engine) ScanInvoicesDue(ctx context.Context, asOf time.Time) (*ScanResult, error) {
	open, err := e.invoices.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing open invoices: %w", err)
	}

	var desired []*Alert

	for _, inv := range open {
		switch {
		case inv.Overdue(asOf):
			desired = append(desired, &Alert{
				Type:         TypeInvoiceDue,
				Severity:     SeverityWarning,
				Subject:      inv.ID.String(),
				ConditionKey: "overdue",
				Message: fmt.Sprintf("Invoice from %s for %s %s was due %s",
					inv.Vendor, inv.Amount, inv.Currency, inv.DueDate.Format(time.DateOnly)),
			})
		case inv.DueWithin(asOf, e.cfg.InvoiceLeadDays):
			desired = append(desired, &Alert{
				Type:         TypeInvoiceDue,
				Severity:     SeverityInfo,
				Subject:      inv.ID.String(),
				ConditionKey: "due_soon",
				Message: fmt.Sprintf("Invoice from %s for %s %s is due %s",
					inv.Vendor, inv.Amount, inv.Currency, inv.DueDate.Format(time.DateOnly)),
			})
		}
	}

	return e.reconcile(ctx, TypeInvoiceDue, desired)
}

// ScanBudgets opens a warning when a budget's raw consumption ratio crosses
// the warn threshold and a critical alert when it reaches 100%, resolving
// whichever condition no longer holds.
func (e *Engine) ScanBudgets(ctx context.Context, asOf time.Time) (*ScanResult, error) {
	budgets, err := e.budgets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	warn := decimal.NewFromInt(int64(e.cfg.BudgetWarnPercent))

	var desired []*Alert

	for _, b := range budgets {
		if !b.Total.IsPositive() {
			continue
		}

		consumption, err := e.budgets.Consumption(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("computing consumption for budget %s: %w", b.ID, err)
		}

		// Raw, unclamped ratio; the display percentage caps at 100.
		ratio := consumption.Consumed.Div(b.Total).Mul(hundred)

		switch {
		case ratio.GreaterThanOrEqual(hundred):
			desired = append(desired, &Alert{
				Type:         TypeBudgetThreshold,
				Severity:     SeverityCritical,
				Subject:      b.ID.String(),
				ConditionKey: "over_100",
				Message: fmt.Sprintf("Budget %s exhausted: %s of %s spent",
					b.Name, consumption.Consumed, b.Total),
			})
		case ratio.GreaterThanOrEqual(warn):
			desired = append(desired, &Alert{
				Type:         TypeBudgetThreshold,
				Severity:     SeverityWarning,
				Subject:      b.ID.String(),
				ConditionKey: fmt.Sprintf("over_%d", e.cfg.BudgetWarnPercent),
				Message: fmt.Sprintf("Budget %s at %s%% consumption (%s of %s)",
					b.Name, ratio.Round(0), consumption.Consumed, b.Total),
			})
		}
	}

	return e.reconcile(ctx, TypeBudgetThreshold, desired)
}

type conditionKey struct {
	subject   string
	condition string
}

// reconcile diffs desired conditions against existing open alerts of one
// type. Each subject's evaluation is a single insert or resolve, so an
// interrupted scan never leaves a subject half-evaluated.
func (e *Engine) reconcile(ctx context.Context, typ Type, desired []*Alert) (*ScanResult, error) {
	existing, err := e.repo.OpenAlerts(ctx, typ)
	if err != nil {
		return nil, fmt.Errorf("listing open alerts: %w", err)
	}

	byKey := make(map[conditionKey]*Alert, len(existing))
	for _, a := range existing {
		byKey[conditionKey{a.Subject, a.ConditionKey}] = a
	}

	result := &ScanResult{}
	wanted := make(map[conditionKey]struct{}, len(desired))

	for _, draft := range desired {
		k := conditionKey{draft.Subject, draft.ConditionKey}
		wanted[k] = struct{}{}

		if _, ok := byKey[k]; ok {
			continue
		}

		err := e.repo.CreateAlert(ctx, draft)
		if errors.Is(err, ErrConflict) {
			// Another scan inserted it between our read and write.
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("creating alert for %s: %w", draft.Subject, err)
		}

		result.Opened = append(result.Opened, draft)
	}

	for _, a := range existing {
		if _, still := wanted[conditionKey{a.Subject, a.ConditionKey}]; still {
			continue
		}

		resolved, err := e.repo.ResolveAlert(ctx, a.ID)
		if errors.Is(err, ErrNotFound) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("resolving alert %s: %w", a.ID, err)
		}

		result.Resolved = append(result.Resolved, resolved)
	}

	return result, nil
}

// Resolve marks an alert resolved on explicit user action.
func (e *Engine) Resolve(ctx context.Context, id uuid.UUID) (*Alert, error) {
	return e.repo.ResolveAlert(ctx, id)
}

// List returns alerts newest first, optionally including resolved ones.
func (e *Engine) List(ctx context.Context, includeResolved bool) ([]*Alert, error) {
	return e.repo.ListAlerts(ctx, includeResolved)
}
