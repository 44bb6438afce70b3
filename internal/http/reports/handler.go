package reports

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/budget"
	"github.com/MrJamesThe3rd/ledgerd/internal/report"
)

type Handler struct {
	engine  *report.Engine
	budgets *budget.Service
}

func NewHandler(engine *report.Engine, budgets *budget.Service) *Handler {
	return &Handler{engine: engine, budgets: budgets}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/monthly", h.monthly)
	r.Get("/quarterly", h.quarterly)
	r.Get("/annual", h.annual)
}

type rollupResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

func toRollupResponse(r report.Rollup) rollupResponse {
	return rollupResponse{Income: r.Income, Expense: r.Expense, Net: r.Net}
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	month, err := intParam(r, "month")
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	rollup, err := h.engine.Rollup(r.Context(), report.Scope{}, report.MonthRange(year, time.Month(month)))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		rollupResponse
	}{year, month, toRollupResponse(rollup)})
}

func (h *Handler) quarterly(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	quarter, err := intParam(r, "quarter")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rng, err := report.QuarterRange(year, quarter)
	if err != nil {
		http.Error(w, "invalid quarter", http.StatusBadRequest)
		return
	}

	rollup, err := h.engine.Rollup(r.Context(), report.Scope{}, rng)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, struct {
		Year    int `json:"year"`
		Quarter int `json:"quarter"`
		rollupResponse
	}{year, quarter, toRollupResponse(rollup)})
}

type annualBudgetResponse struct {
	Total     decimal.Decimal `json:"budget_total"`
	Consumed  decimal.Decimal `json:"budget_consumed"`
	Remaining decimal.Decimal `json:"budget_remaining"`
}

func (h *Handler) annual(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rollup, err := h.engine.Rollup(r.Context(), report.Scope{}, report.YearRange(year))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	budgets, err := h.budgets.AnnualRollup(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, struct {
		Year int `json:"year"`
		rollupResponse
		annualBudgetResponse
	}{year, toRollupResponse(rollup), annualBudgetResponse{
		Total:     budgets.Total,
		Consumed:  budgets.Consumed,
		Remaining: budgets.Remaining,
	}})
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New("missing " + name)
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return v, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
