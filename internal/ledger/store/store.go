package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.account_id, COALESCE(a.currency, '') AS currency, t.date, t.amount, t.direction,
	t.category_id, COALESCE(c.name, '') AS category_name, t.description, t.tags, t.verified,
	t.invoice_id, t.created_at, t.updated_at, t.deleted_at
`

const transactionJoins = `
	FROM transactions t
	LEFT JOIN accounts a ON t.account_id = a.id
	LEFT JOIN categories c ON t.category_id = c.id
`

// scanTransaction reads a transaction row from the scanner.
// Expected column order matches selectTransactionColumns.
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var directionStr string

	var tags sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.AccountID, &tx.Currency, &tx.Date, &tx.Amount, &directionStr,
		&tx.CategoryID, &tx.CategoryName, &tx.Description, &tags, &tx.Verified,
		&tx.InvoiceID, &tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	tx.Direction = ledger.Direction(directionStr)
	tx.Tags = splitTags(tags.String)

	return &tx, nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(s, ",")
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, date, amount, direction, category_id, description, tags, verified, invoice_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.AccountID,
		tx.Date,
		tx.Amount,
		tx.Direction,
		tx.CategoryID,
		tx.Description,
		joinTags(tx.Tags),
		tx.Verified,
		tx.InvoiceID,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + `
		WHERE t.id = $1 AND t.deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// ListTransactions returns non-deleted transactions matching the filter,
// ordered by date ascending. A single query keeps the read on one snapshot.
func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + transactionJoins + `
		WHERE t.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Direction != nil {
		query += fmt.Sprintf(" AND t.direction = $%d", argIdx)

		args = append(args, *filter.Direction)
		argIdx++
	}

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND t.account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	query += " ORDER BY t.date ASC, t.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) CorrectTransaction(ctx context.Context, id uuid.UUID, params ledger.CorrectionParams) error {
	sets := []string{"updated_at = NOW()"}

	var args []any

	argIdx := 1

	switch {
	case params.ClearCategory:
		sets = append(sets, "category_id = NULL")
	case params.CategoryID != nil:
		sets = append(sets, fmt.Sprintf("category_id = $%d", argIdx))

		args = append(args, *params.CategoryID)
		argIdx++
	}

	if params.Verified != nil {
		sets = append(sets, fmt.Sprintf("verified = $%d", argIdx))

		args = append(args, *params.Verified)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE transactions
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
	`, strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("correcting transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking correction result: %w", err)
	}

	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*ledger.Account, error) {
	query := `SELECT id, name, institution, currency, opening_balance, created_at
		FROM accounts
		ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*ledger.Account

	for rows.Next() {
		var acc ledger.Account
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Institution, &acc.Currency, &acc.OpeningBalance, &acc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, &acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accounts, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*ledger.Category, error) {
	query := `SELECT id, name, type, monthly_budget, created_at
		FROM categories
		ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*ledger.Category

	for rows.Next() {
		var (
			cat     ledger.Category
			typeStr string
			budget  decimal.NullDecimal
		)

		if err := rows.Scan(&cat.ID, &cat.Name, &typeStr, &budget, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cat.Type = ledger.Direction(typeStr)
		if budget.Valid {
			cat.MonthlyBudget = &budget.Decimal
		}

		categories = append(categories, &cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}
