package domain_test

import (
	"testing"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoice_Outstanding(t *testing.T) {
	inv := domain.Invoice{
		Total:      decimal.NewFromInt(110),
		PaidAmount: decimal.NewFromInt(40),
	}
	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(70)))

	inv.PaidAmount = inv.Total
	assert.True(t, inv.Outstanding().IsZero())
}

func TestInvoice_IsPayable(t *testing.T) {
	tests := []struct {
		status domain.InvoiceStatus
		want   bool
	}{
		{domain.InvoiceDraft, false},
		{domain.InvoiceSent, true},
		{domain.InvoicePartiallyPaid, true},
		{domain.InvoiceOverdue, true},
		{domain.InvoicePaid, false},
		{domain.InvoiceVoid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			inv := domain.Invoice{Status: tt.status}
			assert.Equal(t, tt.want, inv.IsPayable())
		})
	}
}

func TestInvoice_SettlementStatus(t *testing.T) {
	inv := domain.Invoice{
		Status: domain.InvoiceSent,
		Total:  decimal.NewFromInt(100),
	}

	assert.Equal(t, domain.InvoicePaid, inv.SettlementStatus(decimal.NewFromInt(100)))
	assert.Equal(t, domain.InvoicePaid, inv.SettlementStatus(decimal.NewFromInt(120)))
	assert.Equal(t, domain.InvoicePartiallyPaid, inv.SettlementStatus(decimal.NewFromInt(1)))
	// Nothing paid keeps the current status.
	assert.Equal(t, domain.InvoiceSent, inv.SettlementStatus(decimal.Zero))

	overdue := domain.Invoice{Status: domain.InvoiceOverdue, Total: decimal.NewFromInt(100)}
	assert.Equal(t, domain.InvoiceOverdue, overdue.SettlementStatus(decimal.Zero))
	assert.Equal(t, domain.InvoicePartiallyPaid, overdue.SettlementStatus(decimal.NewFromInt(50)))
}
