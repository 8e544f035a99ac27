package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines data for recording a payment against an invoice.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal      `json:"amount" binding:"required"`
	PaymentDate time.Time            `json:"paymentDate" binding:"required"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CARD CHEQUE"`
	Reference   string               `json:"reference"`
	Notes       string               `json:"notes"`
}

// PaymentResponse defines data returned for a payment.
type PaymentResponse struct {
	PaymentID   string               `json:"paymentID"`
	AgencyID    string               `json:"agencyID"`
	InvoiceID   string               `json:"invoiceID"`
	EntryID     string               `json:"entryID"`
	Amount      decimal.Decimal      `json:"amount"`
	PaymentDate time.Time            `json:"paymentDate"`
	Method      domain.PaymentMethod `json:"method"`
	Reference   string               `json:"reference"`
	Notes       string               `json:"notes"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ToPaymentResponse converts domain.Payment to DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		AgencyID:    p.AgencyID,
		InvoiceID:   p.InvoiceID,
		EntryID:     p.EntryID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Reference:   p.Reference,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

// ListPaymentsResponse wraps a list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToListPaymentsResponse converts a slice of domain.Payment to DTO.
func ToListPaymentsResponse(ps []domain.Payment) ListPaymentsResponse {
	list := make([]PaymentResponse, len(ps))
	for i := range ps {
		list[i] = ToPaymentResponse(&ps[i])
	}
	return ListPaymentsResponse{Payments: list}
}

// RecordPaymentResult bundles the payment with the invoice state after posting.
type RecordPaymentResult struct {
	Payment domain.Payment
	Invoice domain.Invoice
}

// RecordPaymentResponse is the API shape of a posting result.
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

// ToRecordPaymentResponse converts a RecordPaymentResult to DTO.
func ToRecordPaymentResponse(r *RecordPaymentResult) RecordPaymentResponse {
	return RecordPaymentResponse{
		Payment: ToPaymentResponse(&r.Payment),
		Invoice: ToInvoiceResponse(&r.Invoice),
	}
}

// JournalLineResponse defines data returned for a journal line.
type JournalLineResponse struct {
	LineID    string           `json:"lineID"`
	AccountID string           `json:"accountID"`
	Side      domain.EntrySide `json:"side"`
	Amount    decimal.Decimal  `json:"amount"`
	Memo      string           `json:"memo"`
}

// JournalEntryResponse defines data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	AgencyID     string                `json:"agencyID"`
	EntryDate    time.Time             `json:"entryDate"`
	Description  string                `json:"description"`
	CurrencyCode string                `json:"currencyCode"`
	Amount       decimal.Decimal       `json:"amount"`
	Lines        []JournalLineResponse `json:"lines"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// ToJournalEntryResponse converts domain.JournalEntry to DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:      e.EntryID,
		AgencyID:     e.AgencyID,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		CurrencyCode: e.CurrencyCode,
		Amount:       e.Amount,
		CreatedAt:    e.CreatedAt,
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:    line.LineID,
			AccountID: line.AccountID,
			Side:      line.Side,
			Amount:    line.Amount,
			Memo:      line.Memo,
		})
	}
	return resp
}

// AccountResponse defines data returned for a ledger account.
type AccountResponse struct {
	AccountID    string             `json:"accountID"`
	AgencyID     string             `json:"agencyID"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	AccountType  domain.AccountType `json:"accountType"`
	CurrencyCode string             `json:"currencyCode"`
	Balance      decimal.Decimal    `json:"balance"`
	IsActive     bool               `json:"isActive"`
}

// ToAccountResponse converts domain.Account to DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		AgencyID:     a.AgencyID,
		Code:         a.Code,
		Name:         a.Name,
		AccountType:  a.AccountType,
		CurrencyCode: a.CurrencyCode,
		Balance:      a.Balance,
		IsActive:     a.IsActive,
	}
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain.Account to DTO.
func ToListAccountsResponse(as []domain.Account) ListAccountsResponse {
	list := make([]AccountResponse, len(as))
	for i := range as {
		list[i] = ToAccountResponse(&as[i])
	}
	return ListAccountsResponse{Accounts: list}
}
