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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAgencyRepository is a mock type for the AgencyRepository interface
type MockAgencyRepository struct {
	mock.Mock
}

func (m *MockAgencyRepository) SaveAgency(ctx context.Context, agency domain.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}

func (m *MockAgencyRepository) FindAgencyByID(ctx context.Context, agencyID string) (*domain.Agency, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

func (m *MockAgencyRepository) ListAgenciesByUserID(ctx context.Context, userID string) ([]domain.Agency, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agency), args.Error(1)
}

func (m *MockAgencyRepository) UpdateAgency(ctx context.Context, agency domain.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}

func (m *MockAgencyRepository) DeactivateAgency(ctx context.Context, agencyID string, userID string, now time.Time) error {
	args := m.Called(ctx, agencyID, userID, now)
	return args.Error(0)
}

func (m *MockAgencyRepository) AddUserToAgency(ctx context.Context, membership domain.UserAgency) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockAgencyRepository) FindUserAgencyRole(ctx context.Context, userID string, agencyID string) (*domain.UserAgency, error) {
	args := m.Called(ctx, userID, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAgency), args.Error(1)
}

func (m *MockAgencyRepository) UpdateUserAgencyRole(ctx context.Context, userID string, agencyID string, role domain.AgencyRole) error {
	args := m.Called(ctx, userID, agencyID, role)
	return args.Error(0)
}

func (m *MockAgencyRepository) ListAgencyMembers(ctx context.Context, agencyID string) ([]domain.UserAgency, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAgency), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateTOTPSecret(ctx context.Context, userID string, secret string) error {
	args := m.Called(ctx, userID, secret)
	return args.Error(0)
}

func (m *MockUserRepository) SetTOTPEnabled(ctx context.Context, userID string, enabled bool) error {
	args := m.Called(ctx, userID, enabled)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AgencyServiceTestSuite struct {
	suite.Suite
	mockAgencyRepo *MockAgencyRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.AgencySvcFacade

	agencyID string
	userID   string
}

func (suite *AgencyServiceTestSuite) SetupTest() {
	suite.mockAgencyRepo = new(MockAgencyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAgencyService(suite.mockAgencyRepo, suite.mockUserRepo)

	suite.agencyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AgencyServiceTestSuite) membership(role domain.AgencyRole) *domain.UserAgency {
	return &domain.UserAgency{
		UserID:   suite.userID,
		AgencyID: suite.agencyID,
		Role:     role,
		JoinedAt: time.Now(),
	}
}

// --- Test Cases ---

func (suite *AgencyServiceTestSuite) TestAuthorizeUserAction_NonMemberGetsNotFound() {
	ctx := context.Background()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(nil, apperrors.ErrNotFound)

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.agencyID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AgencyServiceTestSuite) TestAuthorizeUserAction_RemovedMemberGetsNotFound() {
	ctx := context.Background()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleRemoved), nil)

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.agencyID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AgencyServiceTestSuite) TestAuthorizeUserAction_InsufficientRoleIsForbidden() {
	ctx := context.Background()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleEmployee), nil)

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.agencyID, domain.RoleManager)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AgencyServiceTestSuite) TestAuthorizeUserAction_SufficientRole() {
	ctx := context.Background()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleAdmin), nil)

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.agencyID, domain.RoleManager)

	suite.NoError(err)
}

func (suite *AgencyServiceTestSuite) TestCreateAgency_MakesCreatorOwner() {
	ctx := context.Background()
	req := dto.CreateAgencyRequest{Name: "Northwind Studio", CurrencyCode: "USD"}

	suite.mockAgencyRepo.On("SaveAgency", ctx, mock.MatchedBy(func(agency domain.Agency) bool {
		return agency.Name == "Northwind Studio" &&
			agency.CurrencyCode == "USD" &&
			agency.IsActive &&
			agency.CreatedBy == suite.userID
	})).Return(nil)
	suite.mockAgencyRepo.On("AddUserToAgency", ctx, mock.MatchedBy(func(m domain.UserAgency) bool {
		return m.UserID == suite.userID && m.Role == domain.RoleOwner
	})).Return(nil)

	agency, err := suite.service.CreateAgency(ctx, req, suite.userID)

	suite.NoError(err)
	suite.NotNil(agency)
	suite.mockAgencyRepo.AssertExpectations(suite.T())
}

func (suite *AgencyServiceTestSuite) TestAddUserToAgency_RejectsOwnerRole() {
	ctx := context.Background()
	target := uuid.NewString()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleAdmin), nil)

	err := suite.service.AddUserToAgency(ctx, suite.userID, target, suite.agencyID, domain.RoleOwner)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAgencyRepo.AssertNotCalled(suite.T(), "AddUserToAgency", mock.Anything, mock.Anything)
}

func (suite *AgencyServiceTestSuite) TestAddUserToAgency_TargetMustExist() {
	ctx := context.Background()
	target := uuid.NewString()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleAdmin), nil)
	suite.mockUserRepo.On("FindUserByID", ctx, target).Return(nil, apperrors.ErrNotFound)

	err := suite.service.AddUserToAgency(ctx, suite.userID, target, suite.agencyID, domain.RoleEmployee)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAgencyRepo.AssertNotCalled(suite.T(), "AddUserToAgency", mock.Anything, mock.Anything)
}

func (suite *AgencyServiceTestSuite) TestAddUserToAgency_Success() {
	ctx := context.Background()
	target := uuid.NewString()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleAdmin), nil)
	suite.mockUserRepo.On("FindUserByID", ctx, target).
		Return(&domain.User{UserID: target}, nil)
	suite.mockAgencyRepo.On("AddUserToAgency", ctx, mock.MatchedBy(func(m domain.UserAgency) bool {
		return m.UserID == target && m.AgencyID == suite.agencyID && m.Role == domain.RoleManager
	})).Return(nil)

	err := suite.service.AddUserToAgency(ctx, suite.userID, target, suite.agencyID, domain.RoleManager)

	suite.NoError(err)
	suite.mockAgencyRepo.AssertExpectations(suite.T())
}

func (suite *AgencyServiceTestSuite) TestUpdateMemberRole_OwnerIsProtected() {
	ctx := context.Background()
	target := uuid.NewString()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleAdmin), nil)
	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, target, suite.agencyID).
		Return(&domain.UserAgency{UserID: target, AgencyID: suite.agencyID, Role: domain.RoleOwner}, nil)

	err := suite.service.UpdateMemberRole(ctx, suite.userID, target, suite.agencyID, domain.RoleEmployee)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAgencyRepo.AssertNotCalled(suite.T(), "UpdateUserAgencyRole",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AgencyServiceTestSuite) TestRemoveMember_NoSelfRemoval() {
	ctx := context.Background()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleAdmin), nil)

	err := suite.service.RemoveMember(ctx, suite.userID, suite.userID, suite.agencyID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AgencyServiceTestSuite) TestRemoveMember_MarksRoleRemoved() {
	ctx := context.Background()
	target := uuid.NewString()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleAdmin), nil)
	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, target, suite.agencyID).
		Return(&domain.UserAgency{UserID: target, AgencyID: suite.agencyID, Role: domain.RoleEmployee}, nil)
	suite.mockAgencyRepo.On("UpdateUserAgencyRole", ctx, target, suite.agencyID, domain.RoleRemoved).
		Return(nil)

	err := suite.service.RemoveMember(ctx, suite.userID, target, suite.agencyID)

	suite.NoError(err)
	suite.mockAgencyRepo.AssertExpectations(suite.T())
}

func (suite *AgencyServiceTestSuite) TestDeactivateAgency_RequiresOwner() {
	ctx := context.Background()

	suite.mockAgencyRepo.On("FindUserAgencyRole", ctx, suite.userID, suite.agencyID).
		Return(suite.membership(domain.RoleAdmin), nil)

	err := suite.service.DeactivateAgency(ctx, suite.agencyID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAgencyRepo.AssertNotCalled(suite.T(), "DeactivateAgency",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAgencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AgencyServiceTestSuite))
}
