package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledgerd/internal/alert"
	alertStore "github.com/MrJamesThe3rd/ledgerd/internal/alert/store"
	"github.com/MrJamesThe3rd/ledgerd/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/ledgerd/internal/budget/store"
	"github.com/MrJamesThe3rd/ledgerd/internal/config"
	"github.com/MrJamesThe3rd/ledgerd/internal/dashboard"
	"github.com/MrJamesThe3rd/ledgerd/internal/database"
	"github.com/MrJamesThe3rd/ledgerd/internal/document"
	documentStore "github.com/MrJamesThe3rd/ledgerd/internal/document/store"
	"github.com/MrJamesThe3rd/ledgerd/internal/fx"
	fxStore "github.com/MrJamesThe3rd/ledgerd/internal/fx/store"
	ledgerdHttp "github.com/MrJamesThe3rd/ledgerd/internal/http"
	alertsHandler "github.com/MrJamesThe3rd/ledgerd/internal/http/alerts"
	budgetsHandler "github.com/MrJamesThe3rd/ledgerd/internal/http/budgets"
	dashboardHandler "github.com/MrJamesThe3rd/ledgerd/internal/http/dashboard"
	fxHandler "github.com/MrJamesThe3rd/ledgerd/internal/http/fxrates"
	invoicesHandler "github.com/MrJamesThe3rd/ledgerd/internal/http/invoices"
	ledgerHandler "github.com/MrJamesThe3rd/ledgerd/internal/http/ledger"
	reportsHandler "github.com/MrJamesThe3rd/ledgerd/internal/http/reports"
	searchHandler "github.com/MrJamesThe3rd/ledgerd/internal/http/search"
	treasuryHandler "github.com/MrJamesThe3rd/ledgerd/internal/http/treasury"
	"github.com/MrJamesThe3rd/ledgerd/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/ledgerd/internal/invoice/store"
	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/ledgerd/internal/ledger/store"
	"github.com/MrJamesThe3rd/ledgerd/internal/report"
	"github.com/MrJamesThe3rd/ledgerd/internal/search"
	"github.com/MrJamesThe3rd/ledgerd/internal/treasury"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		fxService       = fx.NewService(fxStore.New(db), cfg.Finance.BaseCurrency)
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		invoiceService  = invoice.NewService(invoiceStore.New(db))
		documentService = document.NewService(documentStore.New(db))
		reportEngine    = report.NewEngine(ledgerService, fxService)
		budgetService   = budget.NewService(budgetStore.New(db), ledgerService, fxService)
		treasuryService = treasury.NewService(reportEngine, cfg.Forecast.Lookback)
		alertEngine     = alert.NewEngine(alertStore.New(db), invoiceService, budgetService, alert.Config{
			InvoiceLeadDays:   cfg.Alerts.InvoiceLeadDays,
			BudgetWarnPercent: cfg.Alerts.BudgetWarnPercent,
		})
		searchAggregator = search.NewAggregator(ledgerService, invoiceService, budgetService, documentService, cfg.Finance.SearchLimit)
		dashboardService = dashboard.NewService(ledgerService, reportEngine, alertEngine)
	)

	var (
		ledgerH    = ledgerHandler.NewHandler(ledgerService)
		reportsH   = reportsHandler.NewHandler(reportEngine, budgetService)
		dashboardH = dashboardHandler.NewHandler(dashboardService)
		treasuryH  = treasuryHandler.NewHandler(treasuryService, cfg.Forecast.Horizon)
		budgetsH   = budgetsHandler.NewHandler(budgetService)
		invoicesH  = invoicesHandler.NewHandler(invoiceService)
		alertsH    = alertsHandler.NewHandler(alertEngine)
		searchH    = searchHandler.NewHandler(searchAggregator)
		fxH        = fxHandler.NewHandler(fxService)
	)

	router := ledgerdHttp.New(ledgerH, reportsH, dashboardH, treasuryH, budgetsH, invoicesH, alertsH, searchH, fxH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port, "base_currency", cfg.Finance.BaseCurrency)

	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
