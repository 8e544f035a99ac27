package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/agencydesk/agency_desk_app/internal/handlers"
	"github.com/agencydesk/agency_desk_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LeadService ---
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) CreateLead(ctx context.Context, agencyID string, req dto.CreateLeadRequest, creatorUserID string) (*domain.Lead, error) {
	args := m.Called(ctx, agencyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) GetLeadByID(ctx context.Context, agencyID string, leadID string, requestingUserID string) (*domain.Lead, error) {
	args := m.Called(ctx, agencyID, leadID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) ListLeads(ctx context.Context, agencyID string, requestingUserID string, params dto.ListLeadsParams) ([]domain.Lead, error) {
	args := m.Called(ctx, agencyID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}
func (m *MockLeadService) UpdateLead(ctx context.Context, agencyID string, leadID string, req dto.UpdateLeadRequest, requestingUserID string) (*domain.Lead, error) {
	args := m.Called(ctx, agencyID, leadID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) UpdateLeadStatus(ctx context.Context, agencyID string, leadID string, status domain.LeadStatus, requestingUserID string) (*domain.Lead, error) {
	args := m.Called(ctx, agencyID, leadID, status, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) ConvertLead(ctx context.Context, agencyID string, leadID string, req dto.ConvertLeadRequest, requestingUserID string) (*dto.ConvertLeadResult, error) {
	args := m.Called(ctx, agencyID, leadID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConvertLeadResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LeadSvcFacade = (*MockLeadService)(nil)

// --- Test Suite ---
type LeadHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockLeadService *MockLeadService
	jwtSecret       string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LeadHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "agencydesk-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LeadHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLeadService = new(MockLeadService)

	agency := suite.router.Group("/api/v1/agencies/:agency_id")
	handlers.RegisterLeadRoutes(agency, suite.mockLeadService)
}

func (suite *LeadHandlerTestSuite) authorizedRequest(method string, url string, userID string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.NoError(err)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *LeadHandlerTestSuite) TestCreateLead_Success() {
	agencyID := uuid.NewString()
	userID := uuid.NewString()
	created := &domain.Lead{
		LeadID:         uuid.NewString(),
		AgencyID:       agencyID,
		Name:           "Acme Corp",
		Status:         domain.LeadNew,
		EstimatedValue: decimal.NewFromInt(5000),
	}

	suite.mockLeadService.On("CreateLead",
		mock.AnythingOfType("*context.valueCtx"),
		agencyID,
		mock.MatchedBy(func(r dto.CreateLeadRequest) bool { return r.Name == "Acme Corp" }),
		userID,
	).Return(created, nil).Once()

	body := dto.CreateLeadRequest{Name: "Acme Corp", EstimatedValue: decimal.NewFromInt(5000)}
	url := fmt.Sprintf("/api/v1/agencies/%s/leads", agencyID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, url, userID, body))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.LeadResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.LeadID, resp.LeadID)
	suite.Equal(domain.LeadNew, resp.Status)
	suite.mockLeadService.AssertExpectations(suite.T())
}

func (suite *LeadHandlerTestSuite) TestCreateLead_MissingTokenIsUnauthorized() {
	url := fmt.Sprintf("/api/v1/agencies/%s/leads", uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLeadService.AssertNotCalled(suite.T(), "CreateLead",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LeadHandlerTestSuite) TestUpdateLeadStatus_InvalidTransitionIsBadRequest() {
	agencyID := uuid.NewString()
	leadID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLeadService.On("UpdateLeadStatus",
		mock.AnythingOfType("*context.valueCtx"),
		agencyID, leadID, domain.LeadQualified, userID,
	).Return(nil, fmt.Errorf("lead status cannot change from LOST to QUALIFIED: %w", apperrors.ErrValidation)).Once()

	body := dto.UpdateLeadStatusRequest{Status: domain.LeadQualified}
	url := fmt.Sprintf("/api/v1/agencies/%s/leads/%s/status", agencyID, leadID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPut, url, userID, body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLeadService.AssertExpectations(suite.T())
}

func (suite *LeadHandlerTestSuite) TestGetLead_NotFound() {
	agencyID := uuid.NewString()
	leadID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLeadService.On("GetLeadByID",
		mock.AnythingOfType("*context.valueCtx"),
		agencyID, leadID, userID,
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/agencies/%s/leads/%s", agencyID, leadID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, url, userID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LeadHandlerTestSuite) TestConvertLead_Success() {
	agencyID := uuid.NewString()
	leadID := uuid.NewString()
	userID := uuid.NewString()
	clientID := uuid.NewString()
	result := &dto.ConvertLeadResult{
		Lead: domain.Lead{
			LeadID:            leadID,
			AgencyID:          agencyID,
			Status:            domain.LeadConverted,
			ConvertedClientID: &clientID,
		},
		Client: domain.Client{ClientID: clientID, AgencyID: agencyID, Name: "Acme Corp", Status: domain.ClientActive},
	}

	suite.mockLeadService.On("ConvertLead",
		mock.AnythingOfType("*context.valueCtx"),
		agencyID, leadID,
		mock.MatchedBy(func(r dto.ConvertLeadRequest) bool { return !r.CreateProject }),
		userID,
	).Return(result, nil).Once()

	url := fmt.Sprintf("/api/v1/agencies/%s/leads/%s/convert", agencyID, leadID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, url, userID, dto.ConvertLeadRequest{}))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ConvertLeadResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(clientID, resp.Client.ClientID)
	suite.Equal(domain.LeadConverted, resp.Lead.Status)
	suite.Nil(resp.Project)
	suite.mockLeadService.AssertExpectations(suite.T())
}

func (suite *LeadHandlerTestSuite) TestListLeads_PassesStatusFilter() {
	agencyID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLeadService.On("ListLeads",
		mock.AnythingOfType("*context.valueCtx"),
		agencyID, userID,
		mock.MatchedBy(func(p dto.ListLeadsParams) bool {
			return p.Status != nil && *p.Status == domain.LeadQualified && p.Limit == 5
		}),
	).Return([]domain.Lead{}, nil).Once()

	url := fmt.Sprintf("/api/v1/agencies/%s/leads?status=QUALIFIED&limit=5", agencyID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, url, userID, nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLeadService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestLeadHandler(t *testing.T) {
	suite.Run(t, new(LeadHandlerTestSuite))
}
