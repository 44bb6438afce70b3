// Package search is the cross-entity free-text lookup. Matching is
// case-insensitive and diacritic-insensitive substring matching against a
// fixed field set per entity type.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MrJamesThe3rd/ledgerd/internal/budget"
	"github.com/MrJamesThe3rd/ledgerd/internal/document"
	"github.com/MrJamesThe3rd/ledgerd/internal/invoice"
	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=search
type TransactionSource interface {
	List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error)
}

type InvoiceSource interface {
	List(ctx context.Context) ([]*invoice.Invoice, error)
}

type BudgetSource interface {
	List(ctx context.Context) ([]*budget.Budget, error)
}

type DocumentSource interface {
	List(ctx context.Context) ([]*document.Document, error)
}

// Results holds one bounded list per entity type, each in the entity's
// natural order (most recent first).
type Results struct {
	Transactions []*ledger.Transaction
	Invoices     []*invoice.Invoice
	Budgets      []*budget.Budget
	Documents    []*document.Document
}

type Aggregator struct {
	transactions TransactionSource
	invoices     InvoiceSource
	budgets      BudgetSource
	documents    DocumentSource
	limit        int
}

func NewAggregator(transactions TransactionSource, invoices InvoiceSource, budgets BudgetSource, documents DocumentSource, limit int) *Aggregator {
	return &Aggregator{
		transactions: transactions,
		invoices:     invoices,
		budgets:      budgets,
		documents:    documents,
		limit:        limit,
	}
}

// Search matches the query against transaction descriptions and category
// names, invoice vendors, budget names and document filenames. A blank query
// returns empty lists, not everything.
func (a *Aggregator) Search(ctx context.Context, query string) (*Results, error) {
	results := &Results{}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	needle := fold(query)

	txs, err := a.transactions.List(ctx, ledger.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("searching transactions: %w", err)
	}

	for _, tx := range txs {
		if matches(tx.Description, needle) || matches(tx.CategoryName, needle) {
			results.Transactions = append(results.Transactions, tx)
		}
	}

	sort.SliceStable(results.Transactions, func(i, j int) bool {
		return results.Transactions[i].Date.After(results.Transactions[j].Date)
	})
	results.Transactions = capList(results.Transactions, a.limit)

	invoices, err := a.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching invoices: %w", err)
	}

	for _, inv := range invoices {
		if matches(inv.Vendor, needle) {
			results.Invoices = append(results.Invoices, inv)
		}
	}

	sort.SliceStable(results.Invoices, func(i, j int) bool {
		return results.Invoices[i].CreatedAt.After(results.Invoices[j].CreatedAt)
	})
	results.Invoices = capList(results.Invoices, a.limit)

	budgets, err := a.budgets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching budgets: %w", err)
	}

	for _, b := range budgets {
		if matches(b.Name, needle) {
			results.Budgets = append(results.Budgets, b)
		}
	}

	sort.SliceStable(results.Budgets, func(i, j int) bool {
		return results.Budgets[i].Start.After(results.Budgets[j].Start)
	})
	results.Budgets = capList(results.Budgets, a.limit)

	docs, err := a.documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}

	for _, doc := range docs {
		if matches(doc.Filename, needle) {
			results.Documents = append(results.Documents, doc)
		}
	}

	sort.SliceStable(results.Documents, func(i, j int) bool {
		return results.Documents[i].UploadedAt.After(results.Documents[j].UploadedAt)
	})
	results.Documents = capList(results.Documents, a.limit)

	return results, nil
}

func capList[T any](list []T, limit int) []T {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}

	return list
}
