package invoice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ledgerd/internal/invoice"
)

func TestInvoice_DueWithin(t *testing.T) {
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name   string
		status invoice.Status
		due    time.Time
		want   bool
	}

	tests := []testCase{
		{name: "DueInsideWindow", status: invoice.StatusOpen, due: asOf.AddDate(0, 0, 3), want: true},
		{name: "DueOnWindowEdge", status: invoice.StatusOpen, due: asOf.AddDate(0, 0, 7), want: true},
		{name: "DueBeyondWindow", status: invoice.StatusOpen, due: asOf.AddDate(0, 0, 8), want: false},
		{name: "AlreadyOverdue", status: invoice.StatusOpen, due: asOf.AddDate(0, 0, -1), want: true},
		{name: "PaidNeverDue", status: invoice.StatusPaid, due: asOf.AddDate(0, 0, 3), want: false},
		{name: "CanceledNeverDue", status: invoice.StatusCanceled, due: asOf.AddDate(0, 0, 3), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &invoice.Invoice{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.want, inv.DueWithin(asOf, 7))
		})
	}
}

func TestInvoice_Overdue(t *testing.T) {
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	open := &invoice.Invoice{Status: invoice.StatusOpen, DueDate: asOf.AddDate(0, 0, -1)}
	assert.True(t, open.Overdue(asOf))

	dueToday := &invoice.Invoice{Status: invoice.StatusOpen, DueDate: asOf}
	assert.False(t, dueToday.Overdue(asOf))

	paid := &invoice.Invoice{Status: invoice.StatusPaid, DueDate: asOf.AddDate(0, 0, -1)}
	assert.False(t, paid.Overdue(asOf))
}
