package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is a single billed item on a new invoice.
type InvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateInvoiceRequest defines data for creating an invoice. Totals are
// computed server-side from the lines and tax rate.
type CreateInvoiceRequest struct {
	ClientID  string               `json:"clientID" binding:"required"`
	IssueDate time.Time            `json:"issueDate" binding:"required"`
	DueDate   time.Time            `json:"dueDate" binding:"required"`
	TaxRate   decimal.Decimal      `json:"taxRate"`
	Notes     string               `json:"notes"`
	Lines     []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status *domain.InvoiceStatus `form:"status" binding:"omitempty,oneof=DRAFT SENT PARTIALLY_PAID PAID OVERDUE VOID"`
	Limit  int                   `form:"limit,default=20"`
	Offset int                   `form:"offset,default=0"`
}

// InvoiceLineResponse defines data returned for an invoice line.
type InvoiceLineResponse struct {
	LineID      string          `json:"lineID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	AgencyID      string                `json:"agencyID"`
	ClientID      string                `json:"clientID"`
	InvoiceNumber string                `json:"invoiceNumber"`
	IssueDate     time.Time             `json:"issueDate"`
	DueDate       time.Time             `json:"dueDate"`
	CurrencyCode  string                `json:"currencyCode"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxRate       decimal.Decimal       `json:"taxRate"`
	TaxAmount     decimal.Decimal       `json:"taxAmount"`
	Total         decimal.Decimal       `json:"total"`
	PaidAmount    decimal.Decimal       `json:"paidAmount"`
	Outstanding   decimal.Decimal       `json:"outstanding"`
	Status        domain.InvoiceStatus  `json:"status"`
	Notes         string                `json:"notes"`
	Lines         []InvoiceLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ToInvoiceResponse converts domain.Invoice to DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		AgencyID:      inv.AgencyID,
		ClientID:      inv.ClientID,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		CurrencyCode:  inv.CurrencyCode,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		PaidAmount:    inv.PaidAmount,
		Outstanding:   inv.Outstanding(),
		Status:        inv.Status,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
	}
	for _, line := range inv.Lines {
		resp.Lines = append(resp.Lines, InvoiceLineResponse{
			LineID:      line.LineID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
		})
	}
	return resp
}

// ListInvoicesResponse wraps a list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToListInvoicesResponse converts a slice of domain.Invoice to DTO.
func ToListInvoicesResponse(is []domain.Invoice) ListInvoicesResponse {
	list := make([]InvoiceResponse, len(is))
	for i := range is {
		list[i] = ToInvoiceResponse(&is[i])
	}
	return ListInvoicesResponse{Invoices: list}
}
