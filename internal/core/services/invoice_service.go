package services

import (
	"context"
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

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepository
	clientRepo  portsrepo.ClientRepository
	agencyRepo  portsrepo.AgencyRepository
}

// NewInvoiceService creates a new invoice service with the provided dependencies
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepository,
	clientRepo portsrepo.ClientRepository,
	agencyRepo portsrepo.AgencyRepository,
	authorizer portssvc.AgencyAuthorizerSvc,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService: BaseService{AgencyAuthorizer: authorizer},
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		agencyRepo:  agencyRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice builds a draft invoice. All money amounts are computed
// server-side from the line quantities and unit prices; the repository
// allocates the sequential invoice number.
func (s *invoiceService) CreateInvoice(ctx context.Context, agencyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invoice client: %w", err)
	}
	if client.AgencyID != agencyID {
		return nil, fmt.Errorf("client %s not found in agency %s: %w", req.ClientID, agencyID, apperrors.ErrNotFound)
	}
	if req.DueDate.Before(req.IssueDate) {
		return nil, fmt.Errorf("due date precedes issue date: %w", apperrors.ErrValidation)
	}
	if req.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate cannot be negative: %w", apperrors.ErrValidation)
	}

	agency, err := s.agencyRepo.FindAgencyByID(ctx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("invoice agency: %w", err)
	}

	invoiceID := uuid.NewString()
	subtotal := decimal.Zero
	lines := make([]domain.InvoiceLine, len(req.Lines))
	for i, lr := range req.Lines {
		if !lr.Quantity.IsPositive() {
			return nil, fmt.Errorf("line %d: quantity must be positive: %w", i+1, apperrors.ErrValidation)
		}
		if lr.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("line %d: unit price cannot be negative: %w", i+1, apperrors.ErrValidation)
		}
		amount := lr.Quantity.Mul(lr.UnitPrice)
		lines[i] = domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: lr.Description,
			Quantity:    lr.Quantity,
			UnitPrice:   lr.UnitPrice,
			Amount:      amount,
		}
		subtotal = subtotal.Add(amount)
	}

	taxAmount := subtotal.Mul(req.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	now := time.Now()
	invoice := domain.Invoice{
		InvoiceID:    invoiceID,
		AgencyID:     agencyID,
		ClientID:     req.ClientID,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		CurrencyCode: agency.CurrencyCode,
		Subtotal:     subtotal,
		TaxRate:      req.TaxRate,
		TaxAmount:    taxAmount,
		Total:        subtotal.Add(taxAmount),
		PaidAmount:   decimal.Zero,
		Status:       domain.InvoiceDraft,
		Notes:        req.Notes,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	invoiceNumber, err := s.invoiceRepo.SaveInvoice(ctx, invoice)
	if err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("agency_id", agencyID))
		return nil, err
	}
	invoice.InvoiceNumber = invoiceNumber

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoiceNumber))
	return &invoice, nil
}

func (s *invoiceService) findAgencyInvoice(ctx context.Context, agencyID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.AgencyID != agencyID {
		return nil, fmt.Errorf("invoice %s not found in agency %s: %w", invoiceID, agencyID, apperrors.ErrNotFound)
	}
	return invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, agencyID string, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoice, err := s.findAgencyInvoice(ctx, agencyID, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := s.invoiceRepo.FindLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoice lines", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	invoice.Lines = lines
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, agencyID string, requestingUserID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListInvoicesByAgency(ctx, agencyID, params.Status, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("agency_id", agencyID))
		return nil, err
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// SendInvoice issues a draft to the client. Draft is the only sendable state.
func (s *invoiceService) SendInvoice(ctx context.Context, agencyID string, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	invoice, err := s.findAgencyInvoice(ctx, agencyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("only draft invoices can be sent, invoice is %s: %w", invoice.Status, apperrors.ErrValidation)
	}

	now := time.Now()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, domain.InvoiceSent, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to send invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	invoice.Status = domain.InvoiceSent
	invoice.Touch(requestingUserID, now)
	s.LogInfo(ctx, "Invoice sent", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// VoidInvoice cancels an invoice. Invoices with recorded payments cannot be
// voided; paid and already-void invoices are final.
func (s *invoiceService) VoidInvoice(ctx context.Context, agencyID string, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	invoice, err := s.findAgencyInvoice(ctx, agencyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoicePaid || invoice.Status == domain.InvoiceVoid {
		return nil, fmt.Errorf("invoice is %s and cannot be voided: %w", invoice.Status, apperrors.ErrValidation)
	}
	if invoice.PaidAmount.IsPositive() {
		return nil, fmt.Errorf("invoices with recorded payments cannot be voided: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, domain.InvoiceVoid, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to void invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	invoice.Status = domain.InvoiceVoid
	invoice.Touch(requestingUserID, now)
	s.LogInfo(ctx, "Invoice voided", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// RefreshOverdue sweeps the agency's open invoices past their due date into
// the overdue state and reports how many changed.
func (s *invoiceService) RefreshOverdue(ctx context.Context, agencyID string, requestingUserID string) (int64, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return 0, err
	}

	count, err := s.invoiceRepo.MarkOverdueInvoices(ctx, agencyID, time.Now(), requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark overdue invoices", slog.String("agency_id", agencyID))
		return 0, err
	}
	if count > 0 {
		s.LogInfo(ctx, "Invoices marked overdue",
			slog.String("agency_id", agencyID),
			slog.Int64("count", count))
	}
	return count, nil
}
