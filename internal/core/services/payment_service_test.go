package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/core/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPaymentRepository is a mock type for the PaymentRepository interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) RecordPayment(ctx context.Context, payment domain.Payment, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) (*domain.Invoice, error) {
	args := m.Called(ctx, payment, entry, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumPaymentsForInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockInvoiceRepository is a mock type for the InvoiceRepository interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (string, error) {
	args := m.Called(ctx, invoice)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByAgency(ctx context.Context, agencyID string, status *domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, agencyID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string, now time.Time) error {
	args := m.Called(ctx, invoiceID, status, userID, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkOverdueInvoices(ctx context.Context, agencyID string, asOf time.Time, userID string) (int64, error) {
	args := m.Called(ctx, agencyID, asOf, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepository is a mock type for the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) FindAccountByCode(ctx context.Context, agencyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, agencyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) ListAccountsByAgency(ctx context.Context, agencyID string) ([]domain.Account, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAgency(ctx context.Context, agencyID string, limit int, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, agencyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Test Suite Setup ---

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockLedgerRepo  *MockLedgerRepository
	mockAuthorizer  *MockAgencyAuthorizer
	mockNotifier    *MockNotifier
	service         portssvc.PaymentSvcFacade

	agencyID string
	userID   string
	cash     domain.Account
	ar       domain.Account
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAuthorizer = new(MockAgencyAuthorizer)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockInvoiceRepo,
		suite.mockLedgerRepo,
		suite.mockAuthorizer,
		suite.mockNotifier,
	)

	suite.agencyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cash = domain.Account{
		AccountID:   uuid.NewString(),
		AgencyID:    suite.agencyID,
		Code:        domain.AccountCodeCash,
		AccountType: domain.Asset,
	}
	suite.ar = domain.Account{
		AccountID:   uuid.NewString(),
		AgencyID:    suite.agencyID,
		Code:        domain.AccountCodeReceivable,
		AccountType: domain.Asset,
	}
}

func (suite *PaymentServiceTestSuite) sentInvoice(total int64) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		AgencyID:      suite.agencyID,
		InvoiceNumber: "INV-2026-0001",
		CurrencyCode:  "USD",
		Total:         decimal.NewFromInt(total),
		PaidAmount:    decimal.Zero,
		Status:        domain.InvoiceSent,
		AuditFields:   domain.AuditFields{CreatedBy: uuid.NewString()},
	}
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	invoice := suite.sentInvoice(100)
	amount := decimal.NewFromInt(40)
	req := dto.RecordPaymentRequest{
		Amount:      amount,
		PaymentDate: time.Now(),
		Method:      domain.PaymentBankTransfer,
	}

	paid := *invoice
	paid.PaidAmount = amount
	paid.Status = domain.InvoicePartiallyPaid

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockLedgerRepo.On("FindAccountByCode", ctx, suite.agencyID, domain.AccountCodeCash).Return(&suite.cash, nil).Once()
	suite.mockLedgerRepo.On("FindAccountByCode", ctx, suite.agencyID, domain.AccountCodeReceivable).Return(&suite.ar, nil).Once()

	suite.mockPaymentRepo.On("RecordPayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.InvoiceID == invoice.InvoiceID && p.Amount.Equal(amount) && p.AgencyID == suite.agencyID
		}),
		mock.MatchedBy(func(e domain.JournalEntry) bool {
			if len(e.Lines) != 2 || !e.Amount.Equal(amount) {
				return false
			}
			debit, credit := e.Lines[0], e.Lines[1]
			return debit.Side == domain.Debit && debit.AccountID == suite.cash.AccountID &&
				credit.Side == domain.Credit && credit.AccountID == suite.ar.AccountID &&
				debit.Amount.Equal(credit.Amount)
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// Debiting cash raises it, crediting AR lowers it, both assets.
			return changes[suite.cash.AccountID].Equal(amount) &&
				changes[suite.ar.AccountID].Equal(amount.Neg())
		}),
	).Return(&paid, nil).Once()

	suite.mockNotifier.On("Notify", ctx, suite.agencyID, invoice.CreatedBy, domain.NotifyPaymentReceived,
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), invoice.InvoiceID).Return(nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.agencyID, invoice.InvoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Payment.Amount.Equal(amount))
	suite.Equal(invoice.InvoiceID, result.Payment.InvoiceID)
	suite.Equal(domain.InvoicePartiallyPaid, result.Invoice.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_CreatesMissingAccounts() {
	ctx := context.Background()
	invoice := suite.sentInvoice(100)
	amount := decimal.NewFromInt(100)
	req := dto.RecordPaymentRequest{Amount: amount, PaymentDate: time.Now(), Method: domain.PaymentCash}

	paid := *invoice
	paid.PaidAmount = amount
	paid.Status = domain.InvoicePaid

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	// Neither account exists yet; both get created on first payment.
	suite.mockLedgerRepo.On("FindAccountByCode", ctx, suite.agencyID, domain.AccountCodeCash).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("FindAccountByCode", ctx, suite.agencyID, domain.AccountCodeReceivable).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AgencyID == suite.agencyID && a.AccountType == domain.Asset && a.CurrencyCode == "USD"
	})).Return(nil).Twice()
	suite.mockPaymentRepo.On("RecordPayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.JournalEntry"), mock.Anything).Return(&paid, nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.agencyID, invoice.CreatedBy, domain.NotifyPaymentReceived,
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), invoice.InvoiceID).Return(nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.agencyID, invoice.InvoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, result.Invoice.Status)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{Amount: decimal.Zero, PaymentDate: time.Now(), Method: domain.PaymentCash}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.agencyID, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID")
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsDraftInvoice() {
	ctx := context.Background()
	invoice := suite.sentInvoice(100)
	invoice.Status = domain.InvoiceDraft
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(10), PaymentDate: time.Now(), Method: domain.PaymentCash}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.agencyID, invoice.InvoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "RecordPayment")
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsOverpayment() {
	ctx := context.Background()
	invoice := suite.sentInvoice(100)
	invoice.PaidAmount = decimal.NewFromInt(90)
	invoice.Status = domain.InvoicePartiallyPaid
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(20), PaymentDate: time.Now(), Method: domain.PaymentCash}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.agencyID, invoice.InvoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_HidesForeignInvoice() {
	ctx := context.Background()
	invoice := suite.sentInvoice(100)
	invoice.AgencyID = uuid.NewString() // belongs to a different agency
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(10), PaymentDate: time.Now(), Method: domain.PaymentCash}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	result, err := suite.service.RecordPayment(ctx, suite.agencyID, invoice.InvoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(result)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_Forbidden() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(10), PaymentDate: time.Now(), Method: domain.PaymentCash}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(apperrors.ErrForbidden).Once()

	result, err := suite.service.RecordPayment(ctx, suite.agencyID, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NotifyFailureIsNotFatal() {
	ctx := context.Background()
	invoice := suite.sentInvoice(100)
	amount := decimal.NewFromInt(100)
	req := dto.RecordPaymentRequest{Amount: amount, PaymentDate: time.Now(), Method: domain.PaymentCard}

	paid := *invoice
	paid.PaidAmount = amount
	paid.Status = domain.InvoicePaid

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockLedgerRepo.On("FindAccountByCode", ctx, suite.agencyID, domain.AccountCodeCash).Return(&suite.cash, nil).Once()
	suite.mockLedgerRepo.On("FindAccountByCode", ctx, suite.agencyID, domain.AccountCodeReceivable).Return(&suite.ar, nil).Once()
	suite.mockPaymentRepo.On("RecordPayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.JournalEntry"), mock.Anything).Return(&paid, nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.agencyID, invoice.CreatedBy, domain.NotifyPaymentReceived,
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), invoice.InvoiceID).Return(context.DeadlineExceeded).Once()

	result, err := suite.service.RecordPayment(ctx, suite.agencyID, invoice.InvoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.InvoicePaid, result.Invoice.Status)
}

func (suite *PaymentServiceTestSuite) TestGetJournalEntry_LoadsLines() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID:  uuid.NewString(),
		AgencyID: suite.agencyID,
		Amount:   decimal.NewFromInt(40),
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entry.EntryID, Side: domain.Debit, Amount: decimal.NewFromInt(40)},
		{LineID: uuid.NewString(), EntryID: entry.EntryID, Side: domain.Credit, Amount: decimal.NewFromInt(40)},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockLedgerRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	got, err := suite.service.GetJournalEntry(ctx, suite.agencyID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
}

func (suite *PaymentServiceTestSuite) TestGetJournalEntry_HidesForeignEntry() {
	ctx := context.Background()
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), AgencyID: uuid.NewString()}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	got, err := suite.service.GetJournalEntry(ctx, suite.agencyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
