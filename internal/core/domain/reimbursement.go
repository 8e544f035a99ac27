package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReimbursementStatus enumerates the lifecycle states of a reimbursement request.
type ReimbursementStatus string

const (
	ReimbursementPending  ReimbursementStatus = "PENDING"
	ReimbursementApproved ReimbursementStatus = "APPROVED"
	ReimbursementRejected ReimbursementStatus = "REJECTED"
	ReimbursementPaid     ReimbursementStatus = "PAID"
)

// Reimbursement is an employee's claim for out-of-pocket expenses.
type Reimbursement struct {
	ReimbursementID string              `json:"reimbursementID"` // Primary Key (UUID)
	AgencyID        string              `json:"agencyID"`
	UserID          string              `json:"userID"` // The claimant
	Category        string              `json:"category"`
	Amount          decimal.Decimal     `json:"amount"`
	CurrencyCode    string              `json:"currencyCode"`
	Description     string              `json:"description"`
	ReceiptRef      string              `json:"receiptRef"` // External receipt/attachment reference
	Status          ReimbursementStatus `json:"status"`
	DecidedBy       *string             `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time          `json:"decidedAt,omitempty"`
	DecisionNote    string              `json:"decisionNote,omitempty"`
	PaidAt          *time.Time          `json:"paidAt,omitempty"`
	AuditFields
}
