package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus enumerates the lifecycle states of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "DRAFT"
	InvoiceSent          InvoiceStatus = "SENT"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceOverdue       InvoiceStatus = "OVERDUE"
	InvoiceVoid          InvoiceStatus = "VOID"
)

// Invoice is a bill issued by an agency to one of its clients.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary Key (UUID)
	AgencyID      string          `json:"agencyID"`
	ClientID      string          `json:"clientID"`
	InvoiceNumber string          `json:"invoiceNumber"` // INV-YYYY-NNNN, unique per agency
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	CurrencyCode  string          `json:"currencyCode"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"taxRate"` // Percentage, e.g. 10 for 10%
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Status        InvoiceStatus   `json:"status"`
	Notes         string          `json:"notes"`
	Lines         []InvoiceLine   `json:"lines,omitempty"`
	AuditFields
}

// InvoiceLine is a single billed item on an invoice.
type InvoiceLine struct {
	LineID      string          `json:"lineID"` // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"` // Quantity * UnitPrice
}

// Outstanding returns the amount still owed on the invoice.
func (i Invoice) Outstanding() decimal.Decimal {
	return i.Total.Sub(i.PaidAmount)
}

// IsPayable reports whether a payment may be recorded against the invoice.
func (i Invoice) IsPayable() bool {
	switch i.Status {
	case InvoiceSent, InvoicePartiallyPaid, InvoiceOverdue:
		return true
	}
	return false
}

// SettlementStatus derives the post-payment status from the paid amount.
func (i Invoice) SettlementStatus(paid decimal.Decimal) InvoiceStatus {
	if paid.GreaterThanOrEqual(i.Total) {
		return InvoicePaid
	}
	if paid.IsPositive() {
		return InvoicePartiallyPaid
	}
	return i.Status
}
