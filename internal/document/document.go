// Package document models uploaded files only far enough to make them
// searchable by filename. Upload and OCR extraction belong to external
// collaborators.
package document

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID            uuid.UUID
	Filename      string
	StoredPath    string
	TransactionID *uuid.UUID
	InvoiceID     *uuid.UUID
	UploadedAt    time.Time
}

//go:generate mockgen -source=document.go -destination=repository_mock.go -package=document
type Repository interface {
	ListDocuments(ctx context.Context) ([]*Document, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Document, error) {
	return s.repo.ListDocuments(ctx)
}
