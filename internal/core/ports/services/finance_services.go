package services

import (
	"context"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/agencydesk/agency_desk_app/internal/dto"
)

// InvoiceSvcFacade exposes invoice lifecycle operations.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, agencyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, agencyID string, invoiceID string, requestingUserID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, agencyID string, requestingUserID string, params dto.ListInvoicesParams) ([]domain.Invoice, error)
	// SendInvoice moves a DRAFT invoice to SENT, making it payable.
	SendInvoice(ctx context.Context, agencyID string, invoiceID string, requestingUserID string) (*domain.Invoice, error)
	// VoidInvoice cancels an invoice that has no recorded payments.
	VoidInvoice(ctx context.Context, agencyID string, invoiceID string, requestingUserID string) (*domain.Invoice, error)
	// RefreshOverdue flips payable invoices past their due date to OVERDUE.
	RefreshOverdue(ctx context.Context, agencyID string, requestingUserID string) (int64, error)
}

// PaymentSvcFacade exposes the double-entry payment recording core plus
// read access to the resulting ledger.
type PaymentSvcFacade interface {
	RecordPayment(ctx context.Context, agencyID string, invoiceID string, req dto.RecordPaymentRequest, actingUserID string) (*dto.RecordPaymentResult, error)
	ListPaymentsByInvoice(ctx context.Context, agencyID string, invoiceID string, requestingUserID string) ([]domain.Payment, error)
	GetJournalEntry(ctx context.Context, agencyID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)
	ListAccounts(ctx context.Context, agencyID string, requestingUserID string) ([]domain.Account, error)
}
