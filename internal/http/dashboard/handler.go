package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/dashboard"
	"github.com/MrJamesThe3rd/ledgerd/internal/report"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.bundle)
}

type transactionRefResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

type kpiResponse struct {
	Income         decimal.Decimal         `json:"income"`
	Expense        decimal.Decimal         `json:"expense"`
	Net            decimal.Decimal         `json:"net"`
	SavingsRate    float64                 `json:"savings_rate"`
	LargestIncome  *transactionRefResponse `json:"largest_income,omitempty"`
	LargestExpense *transactionRefResponse `json:"largest_expense,omitempty"`
}

type categoryShareResponse struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
	Count      int             `json:"count"`
}

type trendPointResponse struct {
	BucketStart time.Time       `json:"bucket_start"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Balance     decimal.Decimal `json:"balance"`
}

type alertResponse struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type bundleResponse struct {
	Start     time.Time               `json:"start"`
	End       time.Time               `json:"end"`
	KPIs      kpiResponse             `json:"kpis"`
	Breakdown []categoryShareResponse `json:"breakdown"`
	Trends    []trendPointResponse    `json:"trends"`
	Alerts    []alertResponse         `json:"alerts"`
}

func toRef(ref *report.TransactionRef) *transactionRefResponse {
	if ref == nil {
		return nil
	}

	return &transactionRefResponse{Description: ref.Description, Amount: ref.Amount, Date: ref.Date}
}

func toResponse(b *dashboard.Bundle) bundleResponse {
	resp := bundleResponse{
		Start: b.Range.Start,
		End:   b.Range.End,
		KPIs: kpiResponse{
			Income:         b.KPIs.Income,
			Expense:        b.KPIs.Expense,
			Net:            b.KPIs.Net,
			SavingsRate:    b.KPIs.SavingsRate,
			LargestIncome:  toRef(b.KPIs.LargestIncome),
			LargestExpense: toRef(b.KPIs.LargestExpense),
		},
		Breakdown: make([]categoryShareResponse, len(b.Breakdown)),
		Trends:    make([]trendPointResponse, len(b.Trends)),
		Alerts:    make([]alertResponse, len(b.Alerts)),
	}

	for i, share := range b.Breakdown {
		resp.Breakdown[i] = categoryShareResponse{
			Category:   share.Category,
			Amount:     share.Amount,
			Percentage: share.Percentage,
			Count:      share.Count,
		}
	}

	for i, point := range b.Trends {
		resp.Trends[i] = trendPointResponse{
			BucketStart: point.BucketStart,
			Income:      point.Income,
			Expense:     point.Expense,
			Balance:     point.Balance,
		}
	}

	for i, a := range b.Alerts {
		resp.Alerts[i] = alertResponse{
			ID:       a.ID.String(),
			Type:     string(a.Type),
			Severity: string(a.Severity),
			Message:  a.Message,
		}
	}

	return resp
}

func (h *Handler) bundle(w http.ResponseWriter, r *http.Request) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -30)
	bucket := report.BucketDay

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}

		start = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		end = t
	}

	if s := r.URL.Query().Get("bucket"); s != "" {
		bucket = report.Bucket(s)
	}

	rng, err := report.NewRange(start, end)
	if err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			http.Error(w, "end_date before start_date", http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	bundle, err := h.svc.Bundle(r.Context(), rng, bucket)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(bundle)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
