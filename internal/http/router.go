package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/ledgerd/internal/http/alerts"
	"github.com/MrJamesThe3rd/ledgerd/internal/http/budgets"
	"github.com/MrJamesThe3rd/ledgerd/internal/http/dashboard"
	"github.com/MrJamesThe3rd/ledgerd/internal/http/fxrates"
	"github.com/MrJamesThe3rd/ledgerd/internal/http/invoices"
	"github.com/MrJamesThe3rd/ledgerd/internal/http/ledger"
	"github.com/MrJamesThe3rd/ledgerd/internal/http/reports"
	"github.com/MrJamesThe3rd/ledgerd/internal/http/search"
	"github.com/MrJamesThe3rd/ledgerd/internal/http/treasury"
)

func New(
	ledgerV1 *ledger.Handler,
	reportsV1 *reports.Handler,
	dashboardV1 *dashboard.Handler,
	treasuryV1 *treasury.Handler,
	budgetsV1 *budgets.Handler,
	invoicesV1 *invoices.Handler,
	alertsV1 *alerts.Handler,
	searchV1 *search.Handler,
	fxV1 *fxrates.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ledgerV1.Routes(r)
		})

		ledgerV1.ReferenceRoutes(r)

		r.Route("/reports", reportsV1.Routes)

		r.Route("/dashboard", dashboardV1.Routes)

		r.Route("/treasury", treasuryV1.Routes)

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		r.Route("/invoices", invoicesV1.Routes)

		r.Route("/alerts", alertsV1.Routes)

		r.Route("/search", searchV1.Routes)

		r.Route("/rates", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			fxV1.Routes(r)
		})
	})

	return router
}
