package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how a payment was received.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCard         PaymentMethod = "CARD"
	PaymentCheque       PaymentMethod = "CHEQUE"
)

// Payment records money received against an invoice. EntryID links to the
// journal entry that posted the matching debit/credit pair.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	AgencyID    string          `json:"agencyID"`
	InvoiceID   string          `json:"invoiceID"`
	EntryID     string          `json:"entryID"` // FK -> journal_entries.entry_id
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference"` // e.g. bank transaction id
	Notes       string          `json:"notes"`
	AuditFields
}
