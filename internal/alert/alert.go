package alert

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("alert not found")

	// ErrConflict is a uniqueness violation on insert: another scan already
	// created this alert. The engine recovers it as a no-op.
	ErrConflict = errors.New("open alert already exists")
)

type Type string

const (
	TypeInvoiceDue      Type = "invoice_due"
	TypeBudgetThreshold Type = "budget_threshold"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is the only persisted, mutable state this engine owns. At most one
// unresolved alert exists per (type, subject, condition key), enforced by a
// partial unique index at the storage boundary. Resolved is terminal: a
// fresh condition instance creates a new record.
type Alert struct {
	ID           uuid.UUID
	Type         Type
	Severity     Severity
	Subject      string // identifier of the entity the condition is about
	ConditionKey string // which condition holds, e.g. "overdue", "over_100"
	Message      string
	CreatedAt    time.Time
	Resolved     bool
	ResolvedAt   *time.Time
}
