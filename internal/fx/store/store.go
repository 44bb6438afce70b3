package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/ledgerd/internal/fx"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectRateColumns = `id, currency, date, rate_to_base, created_at`

// LatestRate returns the newest rate for currency with effective date <= asOf.
func (s *Store) LatestRate(ctx context.Context, currency string, asOf time.Time) (*fx.Rate, error) {
	query := `SELECT ` + selectRateColumns + `
		FROM exchange_rates
		WHERE currency = $1 AND date <= $2
		ORDER BY date DESC
		LIMIT 1`

	var rate fx.Rate

	err := s.db.QueryRowContext(ctx, query, currency, asOf).
		Scan(&rate.ID, &rate.Currency, &rate.Date, &rate.RateToBase, &rate.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fx.ErrRateNotFound
		}

		return nil, fmt.Errorf("querying latest rate: %w", err)
	}

	return &rate, nil
}

func (s *Store) ListRates(ctx context.Context) ([]*fx.Rate, error) {
	query := `SELECT ` + selectRateColumns + `
		FROM exchange_rates
		ORDER BY currency ASC, date DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing rates: %w", err)
	}
	defer rows.Close()

	var rates []*fx.Rate

	for rows.Next() {
		var rate fx.Rate
		if err := rows.Scan(&rate.ID, &rate.Currency, &rate.Date, &rate.RateToBase, &rate.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning rate: %w", err)
		}

		rates = append(rates, &rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rate rows: %w", err)
	}

	return rates, nil
}

func (s *Store) UpsertRate(ctx context.Context, rate *fx.Rate) error {
	query := `
		INSERT INTO exchange_rates (currency, date, rate_to_base, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (currency, date) DO UPDATE SET rate_to_base = EXCLUDED.rate_to_base
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, rate.Currency, rate.Date, rate.RateToBase).
		Scan(&rate.ID, &rate.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting rate: %w", err)
	}

	return nil
}
