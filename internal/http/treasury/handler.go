package treasury

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/treasury"
)

type Handler struct {
	svc            *treasury.Service
	defaultHorizon int
}

func NewHandler(svc *treasury.Service, defaultHorizon int) *Handler {
	return &Handler{svc: svc, defaultHorizon: defaultHorizon}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/forecast", h.forecast)
}

type monthlyNetResponse struct {
	Month string          `json:"month"`
	Net   decimal.Decimal `json:"net"`
}

type forecastResponse struct {
	History  []monthlyNetResponse `json:"history"`
	Forecast []decimal.Decimal    `json:"forecast"`
}

func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	months := 12
	horizon := h.defaultHorizon
	through := time.Now().UTC()

	if s := r.URL.Query().Get("months"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}

		months = v
	}

	if s := r.URL.Query().Get("horizon"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			http.Error(w, "invalid horizon", http.StatusBadRequest)
			return
		}

		horizon = v
	}

	if s := r.URL.Query().Get("through"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid through", http.StatusBadRequest)
			return
		}

		through = t
	}

	projection, err := h.svc.Project(r.Context(), through, months, horizon)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := forecastResponse{
		History:  make([]monthlyNetResponse, len(projection.History)),
		Forecast: projection.Forecast,
	}
	for i, m := range projection.History {
		resp.History[i] = monthlyNetResponse{Month: m.Month.Format("2006-01"), Net: m.Net}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
