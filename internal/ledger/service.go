package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	CorrectTransaction(ctx context.Context, id uuid.UUID, params CorrectionParams) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	ListAccounts(ctx context.Context) ([]*Account, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}

// ListFilter narrows a transaction read. All fields are optional; date bounds
// are inclusive on both ends.
type ListFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Direction  *Direction
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	AccountID   *uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Direction   Direction
	CategoryID  *uuid.UUID
	Description string
	Tags        []string
	InvoiceID   *uuid.UUID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	tx := &Transaction{
		AccountID:   params.AccountID,
		Date:        params.Date,
		Amount:      params.Amount,
		Direction:   params.Direction,
		CategoryID:  params.CategoryID,
		Description: params.Description,
		Tags:        params.Tags,
		InvoiceID:   params.InvoiceID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// CorrectionParams are the only mutations allowed on a settled transaction.
// ClearCategory distinguishes "set to nil" from "leave unchanged".
type CorrectionParams struct {
	CategoryID    *uuid.UUID
	ClearCategory bool
	Verified      *bool
}

func (s *Service) Correct(ctx context.Context, id uuid.UUID, params CorrectionParams) (*Transaction, error) {
	if err := s.repo.CorrectTransaction(ctx, id, params); err != nil {
		return nil, err
	}

	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *Service) Accounts(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}
