package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Reimbursement mirrors the reimbursements table.
type Reimbursement struct {
	ReimbursementID string          `db:"reimbursement_id"`
	AgencyID        string          `db:"agency_id"`
	UserID          string          `db:"user_id"`
	Category        string          `db:"category"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	Description     string          `db:"description"`
	ReceiptRef      string          `db:"receipt_ref"`
	Status          string          `db:"status"`
	DecidedBy       sql.NullString  `db:"decided_by"`
	DecidedAt       sql.NullTime    `db:"decided_at"`
	DecisionNote    string          `db:"decision_note"`
	PaidAt          sql.NullTime    `db:"paid_at"`
	AuditFields
}
