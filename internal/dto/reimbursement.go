package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitReimbursementRequest defines data for submitting an expense claim.
type SubmitReimbursementRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	ReceiptRef  string          `json:"receiptRef"`
}

// DecideReimbursementRequest carries an approval/rejection note.
type DecideReimbursementRequest struct {
	Note string `json:"note"`
}

// ListReimbursementsParams defines query parameters for listing reimbursements.
type ListReimbursementsParams struct {
	Status *domain.ReimbursementStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED PAID"`
	Limit  int                         `form:"limit,default=20"`
	Offset int                         `form:"offset,default=0"`
}

// ReimbursementResponse defines data returned for a reimbursement.
type ReimbursementResponse struct {
	ReimbursementID string                     `json:"reimbursementID"`
	AgencyID        string                     `json:"agencyID"`
	UserID          string                     `json:"userID"`
	Category        string                     `json:"category"`
	Amount          decimal.Decimal            `json:"amount"`
	CurrencyCode    string                     `json:"currencyCode"`
	Description     string                     `json:"description"`
	ReceiptRef      string                     `json:"receiptRef"`
	Status          domain.ReimbursementStatus `json:"status"`
	DecidedBy       *string                    `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time                 `json:"decidedAt,omitempty"`
	DecisionNote    string                     `json:"decisionNote,omitempty"`
	PaidAt          *time.Time                 `json:"paidAt,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

// ToReimbursementResponse converts domain.Reimbursement to DTO.
func ToReimbursementResponse(r *domain.Reimbursement) ReimbursementResponse {
	return ReimbursementResponse{
		ReimbursementID: r.ReimbursementID,
		AgencyID:        r.AgencyID,
		UserID:          r.UserID,
		Category:        r.Category,
		Amount:          r.Amount,
		CurrencyCode:    r.CurrencyCode,
		Description:     r.Description,
		ReceiptRef:      r.ReceiptRef,
		Status:          r.Status,
		DecidedBy:       r.DecidedBy,
		DecidedAt:       r.DecidedAt,
		DecisionNote:    r.DecisionNote,
		PaidAt:          r.PaidAt,
		CreatedAt:       r.CreatedAt,
	}
}

// ListReimbursementsResponse wraps a list of reimbursements.
type ListReimbursementsResponse struct {
	Reimbursements []ReimbursementResponse `json:"reimbursements"`
}

// ToListReimbursementsResponse converts a slice of domain.Reimbursement to DTO.
func ToListReimbursementsResponse(rs []domain.Reimbursement) ListReimbursementsResponse {
	list := make([]ReimbursementResponse, len(rs))
	for i := range rs {
		list[i] = ToReimbursementResponse(&rs[i])
	}
	return ListReimbursementsResponse{Reimbursements: list}
}
