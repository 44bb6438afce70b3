package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("invoice not found")

// Status is the payment lifecycle of an invoice.
type Status string

const (
	StatusOpen     Status = "open"
	StatusPaid     Status = "paid"
	StatusCanceled Status = "canceled"
)

// ExtractionStatus tracks the OCR collaborator's progress. Read-only here.
type ExtractionStatus string

const (
	ExtractionPending ExtractionStatus = "pending"
	ExtractionSuccess ExtractionStatus = "success"
	ExtractionFailed  ExtractionStatus = "failed"
)

// Invoice is read-only to this engine except for alert evaluation.
type Invoice struct {
	ID         uuid.UUID
	Vendor     string
	Amount     decimal.Decimal
	Currency   string
	DueDate    time.Time
	Status     Status
	Extraction ExtractionStatus
	CreatedAt  time.Time
}

// DueWithin reports whether the invoice is open and due on or before
// asOf+leadDays, the qualifying condition for a due alert.
func (i *Invoice) DueWithin(asOf time.Time, leadDays int) bool {
	return i.Status == StatusOpen && !i.DueDate.After(asOf.AddDate(0, 0, leadDays))
}

// Overdue reports whether the invoice is open and past its due date.
func (i *Invoice) Overdue(asOf time.Time) bool {
	return i.Status == StatusOpen && i.DueDate.Before(asOf)
}
