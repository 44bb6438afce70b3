package invoices

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type invoiceResponse struct {
	ID         uuid.UUID                `json:"id"`
	Vendor     string                   `json:"vendor"`
	Amount     decimal.Decimal          `json:"amount"`
	Currency   string                   `json:"currency"`
	DueDate    time.Time                `json:"due_date"`
	Status     invoice.Status           `json:"status"`
	Extraction invoice.ExtractionStatus `json:"extraction_status"`
	CreatedAt  time.Time                `json:"created_at"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:         inv.ID,
		Vendor:     inv.Vendor,
		Amount:     inv.Amount,
		Currency:   inv.Currency,
		DueDate:    inv.DueDate,
		Status:     inv.Status,
		Extraction: inv.Extraction,
		CreatedAt:  inv.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		invoices []*invoice.Invoice
		err      error
	)

	if r.URL.Query().Get("status") == string(invoice.StatusOpen) {
		invoices, err = h.svc.ListOpen(r.Context())
	} else {
		invoices, err = h.svc.List(r.Context())
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
