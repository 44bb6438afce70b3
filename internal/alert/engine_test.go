package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerd/internal/alert"
	"github.com/MrJamesThe3rd/ledgerd/internal/budget"
	"github.com/MrJamesThe3rd/ledgerd/internal/invoice"
)

var asOf = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func openInvoice(vendor string, due time.Time) *invoice.Invoice {
	return &invoice.Invoice{
		ID:       uuid.New(),
		Vendor:   vendor,
		Amount:   decimal.RequireFromString("100"),
		Currency: "EUR",
		DueDate:  due,
		Status:   invoice.StatusOpen,
	}
}

func defaultConfig() alert.Config {
	return alert.Config{InvoiceLeadDays: 7, BudgetWarnPercent: 80}
}

func TestEngine_ScanInvoicesDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dueSoon := openInvoice("Acme", asOf.AddDate(0, 0, 3))
	overdue := openInvoice("Globex", asOf.AddDate(0, 0, -2))
	farOut := openInvoice("Initech", asOf.AddDate(0, 0, 30))

	invoices := alert.NewMockInvoiceSource(ctrl)
	invoices.EXPECT().ListOpen(gomock.Any()).Return([]*invoice.Invoice{dueSoon, overdue, farOut}, nil)

	repo := alert.NewMockRepository(ctrl)
	repo.EXPECT().OpenAlerts(gomock.Any(), alert.TypeInvoiceDue).Return(nil, nil)

	var created []*alert.Alert

	repo.EXPECT().
		CreateAlert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *alert.Alert) error {
			a.ID = uuid.New()
			created = append(created, a)
			return nil
		}).
		Times(2)

	engine := alert.NewEngine(repo, invoices, alert.NewMockBudgetSource(ctrl), defaultConfig())

	result, err := engine.ScanInvoicesDue(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, result.Opened, 2)
	assert.Empty(t, result.Resolved)

	byCondition := make(map[string]*alert.Alert)
	for _, a := range created {
		byCondition[a.ConditionKey] = a
	}

	require.Contains(t, byCondition, "due_soon")
	assert.Equal(t, alert.SeverityInfo, byCondition["due_soon"].Severity)
	assert.Equal(t, dueSoon.ID.String(), byCondition["due_soon"].Subject)

	require.Contains(t, byCondition, "overdue")
	assert.Equal(t, alert.SeverityWarning, byCondition["overdue"].Severity)
	assert.Equal(t, overdue.ID.String(), byCondition["overdue"].Subject)
}

func TestEngine_ScanInvoicesDue_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := openInvoice("Acme", asOf.AddDate(0, 0, 3))

	invoices := alert.NewMockInvoiceSource(ctrl)
	invoices.EXPECT().ListOpen(gomock.Any()).Return([]*invoice.Invoice{inv}, nil)

	repo := alert.NewMockRepository(ctrl)
	repo.EXPECT().OpenAlerts(gomock.Any(), alert.TypeInvoiceDue).Return([]*alert.Alert{
		{
			ID:           uuid.New(),
			Type:         alert.TypeInvoiceDue,
			Subject:      inv.ID.String(),
			ConditionKey: "due_soon",
		},
	}, nil)

	engine := alert.NewEngine(repo, invoices, alert.NewMockBudgetSource(ctrl), defaultConfig())

	// second pass over unchanged data opens and resolves nothing
	result, err := engine.ScanInvoicesDue(context.Background(), asOf)
	require.NoError(t, err)
	assert.Empty(t, result.Opened)
	assert.Empty(t, result.Resolved)
}

func TestEngine_ScanInvoicesDue_ConflictIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := openInvoice("Acme", asOf.AddDate(0, 0, 3))

	invoices := alert.NewMockInvoiceSource(ctrl)
	invoices.EXPECT().ListOpen(gomock.Any()).Return([]*invoice.Invoice{inv}, nil)

	repo := alert.NewMockRepository(ctrl)
	repo.EXPECT().OpenAlerts(gomock.Any(), alert.TypeInvoiceDue).Return(nil, nil)
	repo.EXPECT().CreateAlert(gomock.Any(), gomock.Any()).Return(alert.ErrConflict)

	engine := alert.NewEngine(repo, invoices, alert.NewMockBudgetSource(ctrl), defaultConfig())

	result, err := engine.ScanInvoicesDue(context.Background(), asOf)
	require.NoError(t, err)
	assert.Empty(t, result.Opened)
}

func TestEngine_ScanInvoicesDue_ResolvesClearedConditions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoices := alert.NewMockInvoiceSource(ctrl)
	invoices.EXPECT().ListOpen(gomock.Any()).Return(nil, nil) // invoice was paid

	stale := &alert.Alert{
		ID:           uuid.New(),
		Type:         alert.TypeInvoiceDue,
		Subject:      uuid.NewString(),
		ConditionKey: "due_soon",
	}

	repo := alert.NewMockRepository(ctrl)
	repo.EXPECT().OpenAlerts(gomock.Any(), alert.TypeInvoiceDue).Return([]*alert.Alert{stale}, nil)
	repo.EXPECT().
		ResolveAlert(gomock.Any(), stale.ID).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*alert.Alert, error) {
			resolved := *stale
			resolved.Resolved = true
			return &resolved, nil
		})

	engine := alert.NewEngine(repo, invoices, alert.NewMockBudgetSource(ctrl), defaultConfig())

	result, err := engine.ScanInvoicesDue(context.Background(), asOf)
	require.NoError(t, err)
	assert.Empty(t, result.Opened)
	require.Len(t, result.Resolved, 1)
	assert.True(t, result.Resolved[0].Resolved)
}

func TestEngine_ScanBudgets(t *testing.T) {
	type testCase struct {
		name          string
		total         string
		consumed      string
		wantCondition string
		wantSeverity  alert.Severity
	}

	tests := []testCase{
		{name: "Exhausted", total: "100", consumed: "150", wantCondition: "over_100", wantSeverity: alert.SeverityCritical},
		{name: "ExactlyFull", total: "100", consumed: "100", wantCondition: "over_100", wantSeverity: alert.SeverityCritical},
		{name: "AboveWarnThreshold", total: "100", consumed: "85", wantCondition: "over_80", wantSeverity: alert.SeverityWarning},
		{name: "BelowThreshold", total: "100", consumed: "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b := &budget.Budget{
				ID:    uuid.New(),
				Name:  "Groceries",
				Total: decimal.RequireFromString(tt.total),
			}

			budgets := alert.NewMockBudgetSource(ctrl)
			budgets.EXPECT().List(gomock.Any()).Return([]*budget.Budget{b}, nil)
			budgets.EXPECT().Consumption(gomock.Any(), b).Return(budget.Consumption{
				Consumed: decimal.RequireFromString(tt.consumed),
			}, nil)

			repo := alert.NewMockRepository(ctrl)
			repo.EXPECT().OpenAlerts(gomock.Any(), alert.TypeBudgetThreshold).Return(nil, nil)

			if tt.wantCondition != "" {
				repo.EXPECT().
					CreateAlert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *alert.Alert) error {
						assert.Equal(t, tt.wantCondition, a.ConditionKey)
						assert.Equal(t, tt.wantSeverity, a.Severity)
						assert.Equal(t, b.ID.String(), a.Subject)
						return nil
					})
			}

			engine := alert.NewEngine(repo, alert.NewMockInvoiceSource(ctrl), budgets, defaultConfig())

			result, err := engine.ScanBudgets(context.Background(), asOf)
			require.NoError(t, err)

			if tt.wantCondition == "" {
				assert.Empty(t, result.Opened)
			} else {
				assert.Len(t, result.Opened, 1)
			}
		})
	}
}

func TestEngine_ScanBudgets_SkipsNonPositiveTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	budgets := alert.NewMockBudgetSource(ctrl)
	budgets.EXPECT().List(gomock.Any()).Return([]*budget.Budget{
		{ID: uuid.New(), Name: "Empty", Total: decimal.Zero},
	}, nil)

	repo := alert.NewMockRepository(ctrl)
	repo.EXPECT().OpenAlerts(gomock.Any(), alert.TypeBudgetThreshold).Return(nil, nil)

	engine := alert.NewEngine(repo, alert.NewMockInvoiceSource(ctrl), budgets, defaultConfig())

	result, err := engine.ScanBudgets(context.Background(), asOf)
	require.NoError(t, err)
	assert.Empty(t, result.Opened)
}

func TestEngine_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := alert.NewMockRepository(ctrl)
	repo.EXPECT().ResolveAlert(gomock.Any(), id).Return(nil, alert.ErrNotFound)

	engine := alert.NewEngine(repo, alert.NewMockInvoiceSource(ctrl), alert.NewMockBudgetSource(ctrl), defaultConfig())

	_, err := engine.Resolve(context.Background(), id)
	assert.ErrorIs(t, err, alert.ErrNotFound)
}
