package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice mirrors the invoices table.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	AgencyID      string          `db:"agency_id"`
	ClientID      string          `db:"client_id"`
	InvoiceNumber string          `db:"invoice_number"`
	IssueDate     time.Time       `db:"issue_date"`
	DueDate       time.Time       `db:"due_date"`
	CurrencyCode  string          `db:"currency_code"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	TaxRate       decimal.Decimal `db:"tax_rate"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	Total         decimal.Decimal `db:"total"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	Status        string          `db:"status"`
	Notes         string          `db:"notes"`
	AuditFields
}

// InvoiceLine mirrors the invoice_lines table.
type InvoiceLine struct {
	LineID      string          `db:"line_id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Amount      decimal.Decimal `db:"amount"`
}
