package budgets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/budget"
)

type budgetResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Period     budget.Period   `json:"period"`
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Total      decimal.Decimal `json:"total"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:         b.ID,
		Name:       b.Name,
		Period:     b.Period,
		Start:      b.Start,
		End:        b.End,
		Total:      b.Total,
		CategoryID: b.CategoryID,
		CreatedAt:  b.CreatedAt,
	}
}

func toResponseList(budgets []*budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	return resp
}

type consumptionResponse struct {
	Budget     budgetResponse  `json:"budget"`
	Consumed   decimal.Decimal `json:"consumed"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage int             `json:"percentage"`
}

func toConsumptionResponse(b *budget.Budget, c budget.Consumption) consumptionResponse {
	return consumptionResponse{
		Budget:     toResponse(b),
		Consumed:   c.Consumed,
		Remaining:  c.Remaining,
		Percentage: c.Percentage,
	}
}

type annualResponse struct {
	Year      int                   `json:"year"`
	Total     decimal.Decimal       `json:"total"`
	Consumed  decimal.Decimal       `json:"consumed"`
	Remaining decimal.Decimal       `json:"remaining"`
	Budgets   []consumptionResponse `json:"budgets"`
}

func toAnnualResponse(summary budget.AnnualSummary) annualResponse {
	resp := annualResponse{
		Year:      summary.Year,
		Total:     summary.Total,
		Consumed:  summary.Consumed,
		Remaining: summary.Remaining,
		Budgets:   make([]consumptionResponse, len(summary.Budgets)),
	}

	for i, bc := range summary.Budgets {
		resp.Budgets[i] = toConsumptionResponse(bc.Budget, bc.Consumption)
	}

	return resp
}
