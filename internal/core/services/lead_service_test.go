package services_test

import (
	"context"
	"testing"

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

// MockLeadRepository is a mock type for the LeadRepository interface
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) SaveLead(ctx context.Context, lead domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListLeadsByAgency(ctx context.Context, agencyID string, status *domain.LeadStatus, limit int, offset int) ([]domain.Lead, error) {
	args := m.Called(ctx, agencyID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) ConvertLead(ctx context.Context, lead domain.Lead, client domain.Client, project *domain.Project) error {
	args := m.Called(ctx, lead, client, project)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LeadServiceTestSuite struct {
	suite.Suite
	mockLeadRepo   *MockLeadRepository
	mockAuthorizer *MockAgencyAuthorizer
	service        portssvc.LeadSvcFacade

	agencyID string
	userID   string
}

func (suite *LeadServiceTestSuite) SetupTest() {
	suite.mockLeadRepo = new(MockLeadRepository)
	suite.mockAuthorizer = new(MockAgencyAuthorizer)
	suite.service = services.NewLeadService(suite.mockLeadRepo, suite.mockAuthorizer)

	suite.agencyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *LeadServiceTestSuite) leadWithStatus(status domain.LeadStatus) *domain.Lead {
	return &domain.Lead{
		LeadID:         uuid.NewString(),
		AgencyID:       suite.agencyID,
		Name:           "Acme Corp",
		ContactName:    "Jane Roe",
		Email:          "jane@acme.test",
		Phone:          "555-0100",
		Source:         "referral",
		EstimatedValue: decimal.NewFromInt(5000),
		Status:         status,
		Notes:          "met at the expo",
		AuditFields:    domain.AuditFields{CreatedBy: uuid.NewString()},
	}
}

// --- Test Cases ---

func (suite *LeadServiceTestSuite) TestCreateLead_StartsInNewStatus() {
	ctx := context.Background()
	req := dto.CreateLeadRequest{
		Name:           "Acme Corp",
		ContactName:    "Jane Roe",
		Email:          "jane@acme.test",
		EstimatedValue: decimal.NewFromInt(5000),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil)
	suite.mockLeadRepo.On("SaveLead", ctx, mock.MatchedBy(func(lead domain.Lead) bool {
		return lead.AgencyID == suite.agencyID &&
			lead.Name == "Acme Corp" &&
			lead.Status == domain.LeadNew &&
			lead.CreatedBy == suite.userID &&
			lead.LeadID != ""
	})).Return(nil)

	lead, err := suite.service.CreateLead(ctx, suite.agencyID, req, suite.userID)

	suite.NoError(err)
	suite.NotNil(lead)
	suite.Equal(domain.LeadNew, lead.Status)
	suite.mockLeadRepo.AssertExpectations(suite.T())
}

func (suite *LeadServiceTestSuite) TestCreateLead_Forbidden() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).
		Return(apperrors.ErrForbidden)

	lead, err := suite.service.CreateLead(ctx, suite.agencyID, dto.CreateLeadRequest{Name: "Acme"}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(lead)
	suite.mockLeadRepo.AssertNotCalled(suite.T(), "SaveLead", mock.Anything, mock.Anything)
}

func (suite *LeadServiceTestSuite) TestGetLeadByID_HidesForeignLead() {
	ctx := context.Background()
	foreign := suite.leadWithStatus(domain.LeadNew)
	foreign.AgencyID = uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleReadOnly).Return(nil)
	suite.mockLeadRepo.On("FindLeadByID", ctx, foreign.LeadID).Return(foreign, nil)

	lead, err := suite.service.GetLeadByID(ctx, suite.agencyID, foreign.LeadID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(lead)
}

func (suite *LeadServiceTestSuite) TestUpdateLeadStatus_Success() {
	ctx := context.Background()
	existing := suite.leadWithStatus(domain.LeadNew)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil)
	suite.mockLeadRepo.On("FindLeadByID", ctx, existing.LeadID).Return(existing, nil)
	suite.mockLeadRepo.On("UpdateLead", ctx, mock.MatchedBy(func(lead domain.Lead) bool {
		return lead.Status == domain.LeadContacted && lead.LastUpdatedBy == suite.userID
	})).Return(nil)

	lead, err := suite.service.UpdateLeadStatus(ctx, suite.agencyID, existing.LeadID, domain.LeadContacted, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.LeadContacted, lead.Status)
	suite.mockLeadRepo.AssertExpectations(suite.T())
}

func (suite *LeadServiceTestSuite) TestUpdateLeadStatus_RejectsConvertedTarget() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil)

	lead, err := suite.service.UpdateLeadStatus(ctx, suite.agencyID, uuid.NewString(), domain.LeadConverted, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(lead)
	suite.mockLeadRepo.AssertNotCalled(suite.T(), "FindLeadByID", mock.Anything, mock.Anything)
}

func (suite *LeadServiceTestSuite) TestUpdateLeadStatus_RejectsInvalidTransition() {
	ctx := context.Background()
	existing := suite.leadWithStatus(domain.LeadLost)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil)
	suite.mockLeadRepo.On("FindLeadByID", ctx, existing.LeadID).Return(existing, nil)

	lead, err := suite.service.UpdateLeadStatus(ctx, suite.agencyID, existing.LeadID, domain.LeadContacted, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(lead)
	suite.mockLeadRepo.AssertNotCalled(suite.T(), "UpdateLead", mock.Anything, mock.Anything)
}

func (suite *LeadServiceTestSuite) TestUpdateLead_RejectsConvertedLead() {
	ctx := context.Background()
	existing := suite.leadWithStatus(domain.LeadConverted)
	newName := "Renamed"

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil)
	suite.mockLeadRepo.On("FindLeadByID", ctx, existing.LeadID).Return(existing, nil)

	lead, err := suite.service.UpdateLead(ctx, suite.agencyID, existing.LeadID, dto.UpdateLeadRequest{Name: &newName}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(lead)
	suite.mockLeadRepo.AssertNotCalled(suite.T(), "UpdateLead", mock.Anything, mock.Anything)
}

func (suite *LeadServiceTestSuite) TestConvertLead_CreatesClientAndProject() {
	ctx := context.Background()
	existing := suite.leadWithStatus(domain.LeadQualified)
	req := dto.ConvertLeadRequest{CreateProject: true, ProjectName: "Website Redesign"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockLeadRepo.On("FindLeadByID", ctx, existing.LeadID).Return(existing, nil)
	suite.mockLeadRepo.On("ConvertLead", ctx,
		mock.MatchedBy(func(lead domain.Lead) bool {
			return lead.Status == domain.LeadConverted && lead.ConvertedClientID != nil
		}),
		mock.MatchedBy(func(client domain.Client) bool {
			return client.AgencyID == suite.agencyID &&
				client.Name == existing.Name &&
				client.Email == existing.Email &&
				client.Status == domain.ClientActive
		}),
		mock.MatchedBy(func(project *domain.Project) bool {
			return project != nil &&
				project.Name == "Website Redesign" &&
				project.Status == domain.ProjectPlanned
		}),
	).Return(nil)

	result, err := suite.service.ConvertLead(ctx, suite.agencyID, existing.LeadID, req, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.LeadConverted, result.Lead.Status)
	suite.NotNil(result.Lead.ConvertedClientID)
	suite.Equal(result.Client.ClientID, *result.Lead.ConvertedClientID)
	suite.NotNil(result.Project)
	suite.Equal(result.Client.ClientID, result.Project.ClientID)
	suite.mockLeadRepo.AssertExpectations(suite.T())
}

func (suite *LeadServiceTestSuite) TestConvertLead_WithoutProject() {
	ctx := context.Background()
	existing := suite.leadWithStatus(domain.LeadQualified)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockLeadRepo.On("FindLeadByID", ctx, existing.LeadID).Return(existing, nil)
	suite.mockLeadRepo.On("ConvertLead", ctx, mock.Anything, mock.Anything, (*domain.Project)(nil)).Return(nil)

	result, err := suite.service.ConvertLead(ctx, suite.agencyID, existing.LeadID, dto.ConvertLeadRequest{}, suite.userID)

	suite.NoError(err)
	suite.Nil(result.Project)
	suite.mockLeadRepo.AssertExpectations(suite.T())
}

func (suite *LeadServiceTestSuite) TestConvertLead_RejectsNonQualifiedLead() {
	ctx := context.Background()
	existing := suite.leadWithStatus(domain.LeadContacted)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockLeadRepo.On("FindLeadByID", ctx, existing.LeadID).Return(existing, nil)

	result, err := suite.service.ConvertLead(ctx, suite.agencyID, existing.LeadID, dto.ConvertLeadRequest{}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockLeadRepo.AssertNotCalled(suite.T(), "ConvertLead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LeadServiceTestSuite) TestConvertLead_RequiresProjectName() {
	ctx := context.Background()
	existing := suite.leadWithStatus(domain.LeadQualified)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil)
	suite.mockLeadRepo.On("FindLeadByID", ctx, existing.LeadID).Return(existing, nil)

	result, err := suite.service.ConvertLead(ctx, suite.agencyID, existing.LeadID, dto.ConvertLeadRequest{CreateProject: true}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockLeadRepo.AssertNotCalled(suite.T(), "ConvertLead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LeadServiceTestSuite) TestListLeads_NilBecomesEmptySlice() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleReadOnly).Return(nil)
	suite.mockLeadRepo.On("ListLeadsByAgency", ctx, suite.agencyID, (*domain.LeadStatus)(nil), 20, 0).
		Return(nil, nil)

	leads, err := suite.service.ListLeads(ctx, suite.agencyID, suite.userID, dto.ListLeadsParams{Limit: 20})

	suite.NoError(err)
	suite.NotNil(leads)
	suite.Empty(leads)
}

func TestLeadServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeadServiceTestSuite))
}
