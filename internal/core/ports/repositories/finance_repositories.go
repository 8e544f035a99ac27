package repositories

import (
	"context"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository persists ledger accounts and journal entries.
type LedgerRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// FindAccountByCode resolves a well-known account (CASH, AR...) for an agency.
	FindAccountByCode(ctx context.Context, agencyID string, code string) (*domain.Account, error)
	ListAccountsByAgency(ctx context.Context, agencyID string) ([]domain.Account, error)

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	ListEntriesByAgency(ctx context.Context, agencyID string, limit int, offset int) ([]domain.JournalEntry, error)
}

// InvoiceRepository persists invoices and their lines.
type InvoiceRepository interface {
	// SaveInvoice inserts the invoice and its lines in one transaction,
	// allocating the next per-agency/per-year invoice number inside it.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) (invoiceNumber string, err error)
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error)
	ListInvoicesByAgency(ctx context.Context, agencyID string, status *domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string, now time.Time) error
	// MarkOverdueInvoices flips SENT/PARTIALLY_PAID invoices whose due date has
	// passed to OVERDUE and returns how many rows changed.
	MarkOverdueInvoices(ctx context.Context, agencyID string, asOf time.Time, userID string) (int64, error)
}

// PaymentRepository persists payments. RecordPayment performs the whole
// double-entry posting atomically: payment row, journal entry with lines,
// account balance updates (rows locked), and the invoice paid-amount/status
// recomputation all commit or roll back together.
type PaymentRepository interface {
	RecordPayment(ctx context.Context, payment domain.Payment, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) (*domain.Invoice, error)
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
	SumPaymentsForInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error)
}
