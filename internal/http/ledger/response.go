package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
)

type transactionResponse struct {
	ID           uuid.UUID        `json:"id"`
	AccountID    *uuid.UUID       `json:"account_id,omitempty"`
	Currency     string           `json:"currency,omitempty"`
	Date         time.Time        `json:"date"`
	Amount       decimal.Decimal  `json:"amount"`
	Direction    ledger.Direction `json:"direction"`
	CategoryID   *uuid.UUID       `json:"category_id,omitempty"`
	CategoryName string           `json:"category_name,omitempty"`
	Description  string           `json:"description"`
	Tags         []string         `json:"tags,omitempty"`
	Verified     bool             `json:"verified"`
	InvoiceID    *uuid.UUID       `json:"invoice_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		AccountID:    tx.AccountID,
		Currency:     tx.Currency,
		Date:         tx.Date,
		Amount:       tx.Amount,
		Direction:    tx.Direction,
		CategoryID:   tx.CategoryID,
		CategoryName: tx.CategoryName,
		Description:  tx.Description,
		Tags:         tx.Tags,
		Verified:     tx.Verified,
		InvoiceID:    tx.InvoiceID,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type accountResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Institution    string          `json:"institution,omitempty"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toAccountResponseList(accounts []*ledger.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = accountResponse{
			ID:             a.ID,
			Name:           a.Name,
			Institution:    a.Institution,
			Currency:       a.Currency,
			OpeningBalance: a.OpeningBalance,
			CreatedAt:      a.CreatedAt,
		}
	}

	return resp
}

type categoryResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Type          ledger.Direction `json:"type"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

func toCategoryResponseList(categories []*ledger.Category) []categoryResponse {
	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{
			ID:            c.ID,
			Name:          c.Name,
			Type:          c.Type,
			MonthlyBudget: c.MonthlyBudget,
			CreatedAt:     c.CreatedAt,
		}
	}

	return resp
}
