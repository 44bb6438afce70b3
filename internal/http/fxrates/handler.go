package fxrates

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/fx"
)

type Handler struct {
	svc *fx.Service
}

func NewHandler(svc *fx.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/", h.upsert)
}

type rateResponse struct {
	ID         uuid.UUID       `json:"id"`
	Currency   string          `json:"currency"`
	Date       time.Time       `json:"date"`
	RateToBase decimal.Decimal `json:"rate_to_base"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toResponse(rate *fx.Rate) rateResponse {
	return rateResponse{
		ID:         rate.ID,
		Currency:   rate.Currency,
		Date:       rate.Date,
		RateToBase: rate.RateToBase,
		CreatedAt:  rate.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := struct {
		Base  string         `json:"base"`
		Rates []rateResponse `json:"rates"`
	}{Base: h.svc.Base(), Rates: make([]rateResponse, len(rates))}

	for i, rate := range rates {
		resp.Rates[i] = toResponse(rate)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type upsertRateRequest struct {
	Currency   string          `json:"currency"`
	Date       time.Time       `json:"date"`
	RateToBase decimal.Decimal `json:"rate_to_base"`
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rate, err := h.svc.Upsert(r.Context(), fx.UpsertParams{
		Currency:   req.Currency,
		Date:       req.Date,
		RateToBase: req.RateToBase,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rate)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
