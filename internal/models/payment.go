package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment mirrors the payments table.
type Payment struct {
	PaymentID   string          `db:"payment_id"`
	AgencyID    string          `db:"agency_id"`
	InvoiceID   string          `db:"invoice_id"`
	EntryID     string          `db:"entry_id"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentDate time.Time       `db:"payment_date"`
	Method      string          `db:"method"`
	Reference   string          `db:"reference"`
	Notes       string          `db:"notes"`
	AuditFields
}
