package alerts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerd/internal/alert"
)

type Handler struct {
	engine *alert.Engine
}

func NewHandler(engine *alert.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/scan", h.scan)
	r.Patch("/{id}/resolve", h.resolve)
}

type alertResponse struct {
	ID           uuid.UUID      `json:"id"`
	Type         alert.Type     `json:"type"`
	Severity     alert.Severity `json:"severity"`
	Subject      string         `json:"subject"`
	ConditionKey string         `json:"condition_key"`
	Message      string         `json:"message"`
	CreatedAt    time.Time      `json:"created_at"`
	Resolved     bool           `json:"resolved"`
	ResolvedAt   *time.Time     `json:"resolved_at,omitempty"`
}

func toResponse(a *alert.Alert) alertResponse {
	return alertResponse{
		ID:           a.ID,
		Type:         a.Type,
		Severity:     a.Severity,
		Subject:      a.Subject,
		ConditionKey: a.ConditionKey,
		Message:      a.Message,
		CreatedAt:    a.CreatedAt,
		Resolved:     a.Resolved,
		ResolvedAt:   a.ResolvedAt,
	}
}

func toResponseList(alerts []*alert.Alert) []alertResponse {
	resp := make([]alertResponse, len(alerts))
	for i, a := range alerts {
		resp[i] = toResponse(a)
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	includeResolved := r.URL.Query().Get("include_resolved") == "true"

	alerts, err := h.engine.List(r.Context(), includeResolved)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(alerts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type scanResponse struct {
	Opened   []alertResponse `json:"opened"`
	Resolved []alertResponse `json:"resolved"`
}

// scan runs both condition scans as of today (or ?as_of=YYYY-MM-DD) and
// reports what changed.
func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()

	if s := r.URL.Query().Get("as_of"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid as_of", http.StatusBadRequest)
			return
		}

		asOf = t
	}

	invoices, err := h.engine.ScanInvoicesDue(r.Context(), asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	budgets, err := h.engine.ScanBudgets(r.Context(), asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := scanResponse{
		Opened:   toResponseList(append(invoices.Opened, budgets.Opened...)),
		Resolved: toResponseList(append(invoices.Resolved, budgets.Resolved...)),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	resolved, err := h.engine.Resolve(r.Context(), id)
	if err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			http.Error(w, "alert not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(resolved)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
