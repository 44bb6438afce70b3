package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/ledgerd/internal/alert"
)

// uniqueViolation is the Postgres SQLSTATE raised by the partial unique
// index on (type, subject, condition_key) WHERE NOT resolved.
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectAlertColumns = `id, type, severity, subject, condition_key, message, created_at, resolved, resolved_at`

func scanAlert(s scanner) (*alert.Alert, error) {
	var a alert.Alert

	var typeStr, severityStr string

	if err := s.Scan(&a.ID, &typeStr, &severityStr, &a.Subject, &a.ConditionKey, &a.Message, &a.CreatedAt, &a.Resolved, &a.ResolvedAt); err != nil {
		return nil, err
	}

	a.Type = alert.Type(typeStr)
	a.Severity = alert.Severity(severityStr)

	return &a, nil
}

func (s *Store) CreateAlert(ctx context.Context, a *alert.Alert) error {
	query := `
		INSERT INTO alerts (type, severity, subject, condition_key, message, created_at, resolved)
		VALUES ($1, $2, $3, $4, $5, NOW(), FALSE)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.Type, a.Severity, a.Subject, a.ConditionKey, a.Message,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return alert.ErrConflict
		}

		return fmt.Errorf("creating alert: %w", err)
	}

	return nil
}

func (s *Store) ListAlerts(ctx context.Context, includeResolved bool) ([]*alert.Alert, error) {
	query := `SELECT ` + selectAlertColumns + ` FROM alerts`
	if !includeResolved {
		query += ` WHERE NOT resolved`
	}

	query += ` ORDER BY created_at DESC`

	return s.list(ctx, query)
}

func (s *Store) OpenAlerts(ctx context.Context, typ alert.Type) ([]*alert.Alert, error) {
	query := `SELECT ` + selectAlertColumns + `
		FROM alerts
		WHERE type = $1 AND NOT resolved
		ORDER BY created_at DESC`

	return s.list(ctx, query, typ)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*alert.Alert, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*alert.Alert

	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}

		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alert rows: %w", err)
	}

	return alerts, nil
}

// ResolveAlert flips an unresolved alert to resolved. Resolved is terminal;
// rows are never reopened or deleted.
func (s *Store) ResolveAlert(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	query := `
		UPDATE alerts
		SET resolved = TRUE, resolved_at = NOW()
		WHERE id = $1 AND NOT resolved
		RETURNING ` + selectAlertColumns

	a, err := scanAlert(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, alert.ErrNotFound
		}

		return nil, fmt.Errorf("resolving alert: %w", err)
	}

	return a, nil
}
