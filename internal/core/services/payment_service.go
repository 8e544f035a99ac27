package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepository
	invoiceRepo portsrepo.InvoiceRepository
	ledgerRepo  portsrepo.LedgerRepository
	notifier    portssvc.Notifier
}

// NewPaymentService creates a new payment service with the provided dependencies
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepository,
	invoiceRepo portsrepo.InvoiceRepository,
	ledgerRepo portsrepo.LedgerRepository,
	authorizer portssvc.AgencyAuthorizerSvc,
	notifier portssvc.Notifier,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: BaseService{AgencyAuthorizer: authorizer},
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		ledgerRepo:  ledgerRepo,
		notifier:    notifier,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// findOrCreateAccount resolves an agency ledger account by code, creating it
// on first use.
func (s *paymentService) findOrCreateAccount(ctx context.Context, agencyID, code, name string, accountType domain.AccountType, currencyCode, userID string) (*domain.Account, error) {
	account, err := s.ledgerRepo.FindAccountByCode(ctx, agencyID, code)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	created := domain.Account{
		AccountID:    uuid.NewString(),
		AgencyID:     agencyID,
		Code:         code,
		Name:         name,
		AccountType:  accountType,
		CurrencyCode: currencyCode,
		Balance:      decimal.Zero,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if saveErr := s.ledgerRepo.SaveAccount(ctx, created); saveErr != nil {
		// A concurrent request may have created the same account.
		if errors.Is(saveErr, apperrors.ErrDuplicate) {
			return s.ledgerRepo.FindAccountByCode(ctx, agencyID, code)
		}
		return nil, saveErr
	}
	return &created, nil
}

// RecordPayment settles part or all of an invoice. It builds a balanced
// journal entry (debit cash, credit accounts receivable) and hands the whole
// thing to the repository, which applies it atomically with the invoice
// update.
func (s *paymentService) RecordPayment(ctx context.Context, agencyID string, invoiceID string, req dto.RecordPaymentRequest, actingUserID string) (*dto.RecordPaymentResult, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.AgencyID != agencyID {
		return nil, fmt.Errorf("invoice %s not found in agency %s: %w", invoiceID, agencyID, apperrors.ErrNotFound)
	}
	// Pre-checks only; the repository revalidates under a row lock.
	if !invoice.IsPayable() {
		return nil, fmt.Errorf("invoice is %s and cannot accept payments: %w", invoice.Status, apperrors.ErrValidation)
	}
	if req.Amount.GreaterThan(invoice.Outstanding()) {
		return nil, fmt.Errorf("payment %s exceeds outstanding amount %s: %w", req.Amount, invoice.Outstanding(), apperrors.ErrValidation)
	}

	cash, err := s.findOrCreateAccount(ctx, agencyID, domain.AccountCodeCash, "Cash", domain.Asset, invoice.CurrencyCode, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("cash account: %w", err)
	}
	receivable, err := s.findOrCreateAccount(ctx, agencyID, domain.AccountCodeReceivable, "Accounts Receivable", domain.Asset, invoice.CurrencyCode, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("receivable account: %w", err)
	}

	now := time.Now()
	entryID := uuid.NewString()
	lines := []domain.JournalLine{
		{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: cash.AccountID,
			Side:      domain.Debit,
			Amount:    req.Amount,
			Memo:      fmt.Sprintf("Payment for invoice %s", invoice.InvoiceNumber),
		},
		{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: receivable.AccountID,
			Side:      domain.Credit,
			Amount:    req.Amount,
			Memo:      fmt.Sprintf("Payment for invoice %s", invoice.InvoiceNumber),
		},
	}
	entry := domain.JournalEntry{
		EntryID:      entryID,
		AgencyID:     agencyID,
		EntryDate:    req.PaymentDate,
		Description:  fmt.Sprintf("Payment received for invoice %s", invoice.InvoiceNumber),
		CurrencyCode: invoice.CurrencyCode,
		Amount:       req.Amount,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	balanceChanges := map[string]decimal.Decimal{
		cash.AccountID:       lines[0].SignedAmount(cash.AccountType),
		receivable.AccountID: lines[1].SignedAmount(receivable.AccountType),
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		AgencyID:    agencyID,
		InvoiceID:   invoiceID,
		EntryID:     entryID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	updatedInvoice, err := s.paymentRepo.RecordPayment(ctx, payment, entry, balanceChanges)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to record payment", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}

	if notifyErr := s.notifier.Notify(ctx, agencyID, updatedInvoice.CreatedBy, domain.NotifyPaymentReceived,
		"Payment received",
		fmt.Sprintf("Invoice %s received a payment of %s %s", updatedInvoice.InvoiceNumber, req.Amount, updatedInvoice.CurrencyCode),
		invoiceID); notifyErr != nil {
		s.LogError(ctx, notifyErr, "Failed to notify about payment", slog.String("invoice_id", invoiceID))
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", invoiceID),
		slog.String("amount", req.Amount.String()))
	return &dto.RecordPaymentResult{
		Payment: payment,
		Invoice: *updatedInvoice,
	}, nil
}

func (s *paymentService) ListPaymentsByInvoice(ctx context.Context, agencyID string, invoiceID string, requestingUserID string) ([]domain.Payment, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.AgencyID != agencyID {
		return nil, fmt.Errorf("invoice %s not found in agency %s: %w", invoiceID, agencyID, apperrors.ErrNotFound)
	}

	payments, err := s.paymentRepo.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

func (s *paymentService) GetJournalEntry(ctx context.Context, agencyID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.AgencyID != agencyID {
		return nil, fmt.Errorf("journal entry %s not found in agency %s: %w", entryID, agencyID, apperrors.ErrNotFound)
	}

	lines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func (s *paymentService) ListAccounts(ctx context.Context, agencyID string, requestingUserID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}
	accounts, err := s.ledgerRepo.ListAccountsByAgency(ctx, agencyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("agency_id", agencyID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}
