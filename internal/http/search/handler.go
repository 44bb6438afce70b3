package search

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/search"
)

type Handler struct {
	agg *search.Aggregator
}

func NewHandler(agg *search.Aggregator) *Handler {
	return &Handler{agg: agg}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.search)
}

type transactionHit struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

type invoiceHit struct {
	ID      uuid.UUID       `json:"id"`
	Vendor  string          `json:"vendor"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
	Status  string          `json:"status"`
}

type budgetHit struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
}

type documentHit struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type searchResponse struct {
	Transactions []transactionHit `json:"transactions"`
	Invoices     []invoiceHit     `json:"invoices"`
	Budgets      []budgetHit      `json:"budgets"`
	Documents    []documentHit    `json:"documents"`
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	results, err := h.agg.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := searchResponse{
		Transactions: make([]transactionHit, len(results.Transactions)),
		Invoices:     make([]invoiceHit, len(results.Invoices)),
		Budgets:      make([]budgetHit, len(results.Budgets)),
		Documents:    make([]documentHit, len(results.Documents)),
	}

	for i, tx := range results.Transactions {
		resp.Transactions[i] = transactionHit{
			ID:          tx.ID,
			Description: tx.Description,
			Category:    tx.CategoryName,
			Amount:      tx.Amount,
			Date:        tx.Date,
		}
	}

	for i, inv := range results.Invoices {
		resp.Invoices[i] = invoiceHit{
			ID:      inv.ID,
			Vendor:  inv.Vendor,
			Amount:  inv.Amount,
			DueDate: inv.DueDate,
			Status:  string(inv.Status),
		}
	}

	for i, b := range results.Budgets {
		resp.Budgets[i] = budgetHit{
			ID:    b.ID,
			Name:  b.Name,
			Total: b.Total,
			Start: b.Start,
			End:   b.End,
		}
	}

	for i, doc := range results.Documents {
		resp.Documents[i] = documentHit{
			ID:         doc.ID,
			Filename:   doc.Filename,
			UploadedAt: doc.UploadedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
