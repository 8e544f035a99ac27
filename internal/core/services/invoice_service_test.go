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

// MockClientRepository is a mock type for the ClientRepository interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClientsByAgency(ctx context.Context, agencyID string, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, agencyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) MarkClientDeleted(ctx context.Context, clientID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, clientID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockClientRepo  *MockClientRepository
	mockAgencyRepo  *MockAgencyRepository
	mockAuthorizer  *MockAgencyAuthorizer
	service         portssvc.InvoiceSvcFacade

	agencyID string
	userID   string
	client   *domain.Client
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockAgencyRepo = new(MockAgencyRepository)
	suite.mockAuthorizer = new(MockAgencyAuthorizer)
	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockClientRepo,
		suite.mockAgencyRepo,
		suite.mockAuthorizer,
	)

	suite.agencyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.client = &domain.Client{
		ClientID: uuid.NewString(),
		AgencyID: suite.agencyID,
		Name:     "Globex",
		Status:   domain.ClientActive,
	}
}

func (suite *InvoiceServiceTestSuite) invoiceWithStatus(status domain.InvoiceStatus) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		AgencyID:      suite.agencyID,
		ClientID:      suite.client.ClientID,
		InvoiceNumber: "INV-2026-0007",
		CurrencyCode:  "USD",
		Subtotal:      decimal.NewFromInt(100),
		Total:         decimal.NewFromInt(100),
		PaidAmount:    decimal.Zero,
		Status:        status,
	}
}

func (suite *InvoiceServiceTestSuite) createRequest() dto.CreateInvoiceRequest {
	issue := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	return dto.CreateInvoiceRequest{
		ClientID:  suite.client.ClientID,
		IssueDate: issue,
		DueDate:   issue.AddDate(0, 1, 0),
		TaxRate:   decimal.NewFromInt(10),
		Lines: []dto.InvoiceLineRequest{
			{Description: "Design work", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromFloat(99.99)},
			{Description: "Hosting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ComputesTotals() {
	ctx := context.Background()
	req := suite.createRequest()

	// 3 * 99.99 + 1 * 50 = 349.97; 10% tax rounds to 35.00.
	wantSubtotal := decimal.NewFromFloat(349.97)
	wantTax := decimal.NewFromInt(35)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(suite.client, nil)
	suite.mockAgencyRepo.On("FindAgencyByID", ctx, suite.agencyID).
		Return(&domain.Agency{AgencyID: suite.agencyID, CurrencyCode: "EUR"}, nil)
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceDraft &&
			inv.CurrencyCode == "EUR" &&
			inv.Subtotal.Equal(wantSubtotal) &&
			inv.TaxAmount.Equal(wantTax) &&
			inv.Total.Equal(wantSubtotal.Add(wantTax)) &&
			len(inv.Lines) == 2
	})).Return("INV-2026-0008", nil)

	invoice, err := suite.service.CreateInvoice(ctx, suite.agencyID, req, suite.userID)

	suite.NoError(err)
	suite.Equal("INV-2026-0008", invoice.InvoiceNumber)
	suite.Equal(domain.InvoiceDraft, invoice.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RejectsDueBeforeIssue() {
	ctx := context.Background()
	req := suite.createRequest()
	req.DueDate = req.IssueDate.AddDate(0, 0, -1)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(suite.client, nil)

	invoice, err := suite.service.CreateInvoice(ctx, suite.agencyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(invoice)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RejectsZeroQuantityLine() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Lines[0].Quantity = decimal.Zero

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(suite.client, nil)
	suite.mockAgencyRepo.On("FindAgencyByID", ctx, suite.agencyID).
		Return(&domain.Agency{AgencyID: suite.agencyID, CurrencyCode: "USD"}, nil)

	invoice, err := suite.service.CreateInvoice(ctx, suite.agencyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(invoice)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_HidesForeignClient() {
	ctx := context.Background()
	req := suite.createRequest()
	foreign := *suite.client
	foreign.AgencyID = uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&foreign, nil)

	invoice, err := suite.service.CreateInvoice(ctx, suite.agencyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(invoice)
}

func (suite *InvoiceServiceTestSuite) TestSendInvoice_DraftOnly() {
	ctx := context.Background()
	sent := suite.invoiceWithStatus(domain.InvoiceSent)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, sent.InvoiceID).Return(sent, nil)

	invoice, err := suite.service.SendInvoice(ctx, suite.agencyID, sent.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(invoice)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestSendInvoice_Success() {
	ctx := context.Background()
	draft := suite.invoiceWithStatus(domain.InvoiceDraft)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, draft.InvoiceID).Return(draft, nil)
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, draft.InvoiceID, domain.InvoiceSent, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil)

	invoice, err := suite.service.SendInvoice(ctx, suite.agencyID, draft.InvoiceID, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.InvoiceSent, invoice.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestVoidInvoice_RejectsPaidAmount() {
	ctx := context.Background()
	partiallyPaid := suite.invoiceWithStatus(domain.InvoicePartiallyPaid)
	partiallyPaid.PaidAmount = decimal.NewFromInt(40)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleAdmin).Return(nil)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, partiallyPaid.InvoiceID).Return(partiallyPaid, nil)

	invoice, err := suite.service.VoidInvoice(ctx, suite.agencyID, partiallyPaid.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(invoice)
}

func (suite *InvoiceServiceTestSuite) TestVoidInvoice_SentWithoutPayments() {
	ctx := context.Background()
	sent := suite.invoiceWithStatus(domain.InvoiceSent)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleAdmin).Return(nil)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, sent.InvoiceID).Return(sent, nil)
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, sent.InvoiceID, domain.InvoiceVoid, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil)

	invoice, err := suite.service.VoidInvoice(ctx, suite.agencyID, sent.InvoiceID, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.InvoiceVoid, invoice.Status)
}

func (suite *InvoiceServiceTestSuite) TestRefreshOverdue_ReportsCount() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockInvoiceRepo.On("MarkOverdueInvoices", ctx, suite.agencyID, mock.AnythingOfType("time.Time"), suite.userID).
		Return(int64(3), nil)

	count, err := suite.service.RefreshOverdue(ctx, suite.agencyID, suite.userID)

	suite.NoError(err)
	suite.Equal(int64(3), count)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_LoadsLines() {
	ctx := context.Background()
	sent := suite.invoiceWithStatus(domain.InvoiceSent)
	lines := []domain.InvoiceLine{{LineID: uuid.NewString(), InvoiceID: sent.InvoiceID}}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleReadOnly).Return(nil)
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, sent.InvoiceID).Return(sent, nil)
	suite.mockInvoiceRepo.On("FindLinesByInvoiceID", ctx, sent.InvoiceID).Return(lines, nil)

	invoice, err := suite.service.GetInvoiceByID(ctx, suite.agencyID, sent.InvoiceID, suite.userID)

	suite.NoError(err)
	suite.Len(invoice.Lines, 1)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
