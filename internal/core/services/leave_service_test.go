package services_test

import (
	"context"
	"fmt"
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

// MockLeaveRepository is a mock type for the LeaveRepository interface
type MockLeaveRepository struct {
	mock.Mock
}

func (m *MockLeaveRepository) SaveLeaveType(ctx context.Context, leaveType domain.LeaveType) error {
	args := m.Called(ctx, leaveType)
	return args.Error(0)
}

func (m *MockLeaveRepository) FindLeaveTypeByID(ctx context.Context, leaveTypeID string) (*domain.LeaveType, error) {
	args := m.Called(ctx, leaveTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveType), args.Error(1)
}

func (m *MockLeaveRepository) ListLeaveTypesByAgency(ctx context.Context, agencyID string) ([]domain.LeaveType, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveType), args.Error(1)
}

func (m *MockLeaveRepository) UpdateLeaveType(ctx context.Context, leaveType domain.LeaveType) error {
	args := m.Called(ctx, leaveType)
	return args.Error(0)
}

func (m *MockLeaveRepository) DeleteLeaveType(ctx context.Context, leaveTypeID string) error {
	args := m.Called(ctx, leaveTypeID)
	return args.Error(0)
}

func (m *MockLeaveRepository) SaveHoliday(ctx context.Context, holiday domain.Holiday) error {
	args := m.Called(ctx, holiday)
	return args.Error(0)
}

func (m *MockLeaveRepository) DeleteHoliday(ctx context.Context, holidayID string) error {
	args := m.Called(ctx, holidayID)
	return args.Error(0)
}

func (m *MockLeaveRepository) ListHolidaysByAgency(ctx context.Context, agencyID string, from time.Time, to time.Time) ([]domain.Holiday, error) {
	args := m.Called(ctx, agencyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holiday), args.Error(1)
}

func (m *MockLeaveRepository) SaveLeaveRequest(ctx context.Context, request domain.LeaveRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockLeaveRepository) FindLeaveRequestByID(ctx context.Context, requestID string) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRepository) ListLeaveRequestsByAgency(ctx context.Context, agencyID string, status *domain.LeaveStatus, limit int, offset int) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, agencyID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRepository) ListLeaveRequestsByUser(ctx context.Context, agencyID string, userID string) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, agencyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRepository) FindOverlappingRequests(ctx context.Context, agencyID string, userID string, start time.Time, end time.Time) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, agencyID, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRepository) SumApprovedDays(ctx context.Context, agencyID string, userID string, leaveTypeID string, year int) (int, error) {
	args := m.Called(ctx, agencyID, userID, leaveTypeID, year)
	return args.Int(0), args.Error(1)
}

func (m *MockLeaveRepository) UpdateLeaveRequest(ctx context.Context, request domain.LeaveRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LeaveServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockLeaveRepository
	mockAuthorizer *MockAgencyAuthorizer
	mockNotifier   *MockNotifier
	service        portssvc.LeaveSvcFacade

	agencyID  string
	userID    string
	leaveType *domain.LeaveType
}

func (suite *LeaveServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLeaveRepository)
	suite.mockAuthorizer = new(MockAgencyAuthorizer)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewLeaveService(suite.mockRepo, suite.mockAuthorizer, suite.mockNotifier)

	suite.agencyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.leaveType = &domain.LeaveType{
		LeaveTypeID:   uuid.NewString(),
		AgencyID:      suite.agencyID,
		Name:          "Annual",
		AllowanceDays: 20,
		IsPaid:        true,
	}
}

// --- Test Cases ---

func (suite *LeaveServiceTestSuite) TestApplyForLeave_Success() {
	ctx := context.Background()
	// Mon 2026-03-02 .. Fri 2026-03-06, one holiday on Wednesday.
	req := dto.ApplyLeaveRequest{
		LeaveTypeID: suite.leaveType.LeaveTypeID,
		StartDate:   time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
		Reason:      "Family visit",
	}
	holidays := []domain.Holiday{{
		HolidayID: uuid.NewString(),
		AgencyID:  suite.agencyID,
		Date:      time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
	}}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil).Once()
	suite.mockRepo.On("FindLeaveTypeByID", ctx, suite.leaveType.LeaveTypeID).Return(suite.leaveType, nil).Once()
	suite.mockRepo.On("ListHolidaysByAgency", ctx, suite.agencyID, req.StartDate, req.EndDate).Return(holidays, nil).Once()
	suite.mockRepo.On("FindOverlappingRequests", ctx, suite.agencyID, suite.userID, req.StartDate, req.EndDate).Return([]domain.LeaveRequest{}, nil).Once()
	suite.mockRepo.On("SumApprovedDays", ctx, suite.agencyID, suite.userID, suite.leaveType.LeaveTypeID, 2026).Return(10, nil).Once()
	suite.mockRepo.On("SaveLeaveRequest", ctx, mock.MatchedBy(func(r domain.LeaveRequest) bool {
		return r.WorkingDays == 4 && r.Status == domain.LeavePending && r.UserID == suite.userID
	})).Return(nil).Once()

	request, err := suite.service.ApplyForLeave(ctx, suite.agencyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(request)
	suite.Equal(4, request.WorkingDays)
	suite.Equal(domain.LeavePending, request.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestApplyForLeave_RejectsYearSpanning() {
	ctx := context.Background()
	req := dto.ApplyLeaveRequest{
		LeaveTypeID: suite.leaveType.LeaveTypeID,
		StartDate:   time.Date(2026, time.December, 28, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2027, time.January, 4, 0, 0, 0, 0, time.UTC),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil).Once()

	request, err := suite.service.ApplyForLeave(ctx, suite.agencyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(request)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLeaveTypeByID")
}

func (suite *LeaveServiceTestSuite) TestApplyForLeave_RejectsWeekendOnlyRange() {
	ctx := context.Background()
	req := dto.ApplyLeaveRequest{
		LeaveTypeID: suite.leaveType.LeaveTypeID,
		StartDate:   time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil).Once()
	suite.mockRepo.On("FindLeaveTypeByID", ctx, suite.leaveType.LeaveTypeID).Return(suite.leaveType, nil).Once()
	suite.mockRepo.On("ListHolidaysByAgency", ctx, suite.agencyID, req.StartDate, req.EndDate).Return([]domain.Holiday{}, nil).Once()

	request, err := suite.service.ApplyForLeave(ctx, suite.agencyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(request)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLeaveRequest")
}

func (suite *LeaveServiceTestSuite) TestApplyForLeave_RejectsOverlap() {
	ctx := context.Background()
	req := dto.ApplyLeaveRequest{
		LeaveTypeID: suite.leaveType.LeaveTypeID,
		StartDate:   time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
	}
	existing := []domain.LeaveRequest{{LeaveRequestID: uuid.NewString(), Status: domain.LeaveApproved}}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil).Once()
	suite.mockRepo.On("FindLeaveTypeByID", ctx, suite.leaveType.LeaveTypeID).Return(suite.leaveType, nil).Once()
	suite.mockRepo.On("ListHolidaysByAgency", ctx, suite.agencyID, req.StartDate, req.EndDate).Return([]domain.Holiday{}, nil).Once()
	suite.mockRepo.On("FindOverlappingRequests", ctx, suite.agencyID, suite.userID, req.StartDate, req.EndDate).Return(existing, nil).Once()

	request, err := suite.service.ApplyForLeave(ctx, suite.agencyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(request)
}

func (suite *LeaveServiceTestSuite) TestApplyForLeave_RejectsExceededAllowance() {
	ctx := context.Background()
	req := dto.ApplyLeaveRequest{
		LeaveTypeID: suite.leaveType.LeaveTypeID,
		StartDate:   time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil).Once()
	suite.mockRepo.On("FindLeaveTypeByID", ctx, suite.leaveType.LeaveTypeID).Return(suite.leaveType, nil).Once()
	suite.mockRepo.On("ListHolidaysByAgency", ctx, suite.agencyID, req.StartDate, req.EndDate).Return([]domain.Holiday{}, nil).Once()
	suite.mockRepo.On("FindOverlappingRequests", ctx, suite.agencyID, suite.userID, req.StartDate, req.EndDate).Return([]domain.LeaveRequest{}, nil).Once()
	// 18 used + 5 requested > 20 allowed
	suite.mockRepo.On("SumApprovedDays", ctx, suite.agencyID, suite.userID, suite.leaveType.LeaveTypeID, 2026).Return(18, nil).Once()

	request, err := suite.service.ApplyForLeave(ctx, suite.agencyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(request)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLeaveRequest")
}

func (suite *LeaveServiceTestSuite) TestDeleteLeaveType_Success() {
	ctx := context.Background()
	adminID := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, adminID, suite.agencyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockRepo.On("FindLeaveTypeByID", ctx, suite.leaveType.LeaveTypeID).Return(suite.leaveType, nil).Once()
	suite.mockRepo.On("DeleteLeaveType", ctx, suite.leaveType.LeaveTypeID).Return(nil).Once()

	err := suite.service.DeleteLeaveType(ctx, suite.agencyID, suite.leaveType.LeaveTypeID, adminID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestDeleteLeaveType_InUse() {
	ctx := context.Background()
	adminID := uuid.NewString()
	repoErr := fmt.Errorf("leave type is referenced by existing leave requests: %w", apperrors.ErrValidation)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, adminID, suite.agencyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockRepo.On("FindLeaveTypeByID", ctx, suite.leaveType.LeaveTypeID).Return(suite.leaveType, nil).Once()
	suite.mockRepo.On("DeleteLeaveType", ctx, suite.leaveType.LeaveTypeID).Return(repoErr).Once()

	err := suite.service.DeleteLeaveType(ctx, suite.agencyID, suite.leaveType.LeaveTypeID, adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LeaveServiceTestSuite) TestDeleteLeaveType_HidesForeignType() {
	ctx := context.Background()
	adminID := uuid.NewString()
	foreign := &domain.LeaveType{
		LeaveTypeID:   uuid.NewString(),
		AgencyID:      uuid.NewString(),
		Name:          "Sick",
		AllowanceDays: 10,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, adminID, suite.agencyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockRepo.On("FindLeaveTypeByID", ctx, foreign.LeaveTypeID).Return(foreign, nil).Once()

	err := suite.service.DeleteLeaveType(ctx, suite.agencyID, foreign.LeaveTypeID, adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteLeaveType")
}

func (suite *LeaveServiceTestSuite) TestDecideLeaveRequest_Approve() {
	ctx := context.Background()
	managerID := uuid.NewString()
	request := &domain.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		AgencyID:       suite.agencyID,
		UserID:         suite.userID,
		LeaveTypeID:    suite.leaveType.LeaveTypeID,
		StartDate:      time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
		WorkingDays:    5,
		Status:         domain.LeavePending,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, managerID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockRepo.On("FindLeaveRequestByID", ctx, request.LeaveRequestID).Return(request, nil).Once()
	suite.mockRepo.On("FindLeaveTypeByID", ctx, suite.leaveType.LeaveTypeID).Return(suite.leaveType, nil).Once()
	suite.mockRepo.On("SumApprovedDays", ctx, suite.agencyID, suite.userID, suite.leaveType.LeaveTypeID, 2026).Return(10, nil).Once()
	suite.mockRepo.On("UpdateLeaveRequest", ctx, mock.MatchedBy(func(r domain.LeaveRequest) bool {
		return r.Status == domain.LeaveApproved && r.DecidedBy != nil && *r.DecidedBy == managerID
	})).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.agencyID, suite.userID, domain.NotifyLeaveDecision,
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), request.LeaveRequestID).Return(nil).Once()

	decided, err := suite.service.DecideLeaveRequest(ctx, suite.agencyID, request.LeaveRequestID, true, "enjoy", managerID)

	suite.Require().NoError(err)
	suite.Equal(domain.LeaveApproved, decided.Status)
	suite.Equal("enjoy", decided.DecisionNote)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *LeaveServiceTestSuite) TestDecideLeaveRequest_ApproveRechecksAllowance() {
	ctx := context.Background()
	managerID := uuid.NewString()
	// Two pending requests can each fit the allowance alone; approving the
	// second after the first must fail once the allowance is used up.
	request := &domain.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		AgencyID:       suite.agencyID,
		UserID:         suite.userID,
		LeaveTypeID:    suite.leaveType.LeaveTypeID,
		StartDate:      time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
		WorkingDays:    5,
		Status:         domain.LeavePending,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, managerID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockRepo.On("FindLeaveRequestByID", ctx, request.LeaveRequestID).Return(request, nil).Once()
	suite.mockRepo.On("FindLeaveTypeByID", ctx, suite.leaveType.LeaveTypeID).Return(suite.leaveType, nil).Once()
	// 18 approved + 5 requested > 20 allowed
	suite.mockRepo.On("SumApprovedDays", ctx, suite.agencyID, suite.userID, suite.leaveType.LeaveTypeID, 2026).Return(18, nil).Once()

	decided, err := suite.service.DecideLeaveRequest(ctx, suite.agencyID, request.LeaveRequestID, true, "", managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(decided)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLeaveRequest")
}

func (suite *LeaveServiceTestSuite) TestDecideLeaveRequest_RejectSkipsAllowanceCheck() {
	ctx := context.Background()
	managerID := uuid.NewString()
	request := &domain.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		AgencyID:       suite.agencyID,
		UserID:         suite.userID,
		LeaveTypeID:    suite.leaveType.LeaveTypeID,
		StartDate:      time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
		WorkingDays:    5,
		Status:         domain.LeavePending,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, managerID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockRepo.On("FindLeaveRequestByID", ctx, request.LeaveRequestID).Return(request, nil).Once()
	suite.mockRepo.On("UpdateLeaveRequest", ctx, mock.MatchedBy(func(r domain.LeaveRequest) bool {
		return r.Status == domain.LeaveRejected
	})).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, suite.agencyID, suite.userID, domain.NotifyLeaveDecision,
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), request.LeaveRequestID).Return(nil).Once()

	decided, err := suite.service.DecideLeaveRequest(ctx, suite.agencyID, request.LeaveRequestID, false, "no cover", managerID)

	suite.Require().NoError(err)
	suite.Equal(domain.LeaveRejected, decided.Status)
	suite.mockRepo.AssertNotCalled(suite.T(), "SumApprovedDays")
}

func (suite *LeaveServiceTestSuite) TestDecideLeaveRequest_RejectsOwnRequest() {
	ctx := context.Background()
	request := &domain.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		AgencyID:       suite.agencyID,
		UserID:         suite.userID,
		Status:         domain.LeavePending,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockRepo.On("FindLeaveRequestByID", ctx, request.LeaveRequestID).Return(request, nil).Once()

	decided, err := suite.service.DecideLeaveRequest(ctx, suite.agencyID, request.LeaveRequestID, true, "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(decided)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLeaveRequest")
}

func (suite *LeaveServiceTestSuite) TestDecideLeaveRequest_RejectsNonPending() {
	ctx := context.Background()
	managerID := uuid.NewString()
	request := &domain.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		AgencyID:       suite.agencyID,
		UserID:         suite.userID,
		Status:         domain.LeaveApproved,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, managerID, suite.agencyID, domain.RoleManager).Return(nil).Once()
	suite.mockRepo.On("FindLeaveRequestByID", ctx, request.LeaveRequestID).Return(request, nil).Once()

	decided, err := suite.service.DecideLeaveRequest(ctx, suite.agencyID, request.LeaveRequestID, false, "", managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(decided)
}

func (suite *LeaveServiceTestSuite) TestCancelLeaveRequest_OnlyRequester() {
	ctx := context.Background()
	otherUserID := uuid.NewString()
	request := &domain.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		AgencyID:       suite.agencyID,
		UserID:         suite.userID,
		Status:         domain.LeavePending,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, otherUserID, suite.agencyID, domain.RoleEmployee).Return(nil).Once()
	suite.mockRepo.On("FindLeaveRequestByID", ctx, request.LeaveRequestID).Return(request, nil).Once()

	cancelled, err := suite.service.CancelLeaveRequest(ctx, suite.agencyID, request.LeaveRequestID, otherUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(cancelled)
}

func (suite *LeaveServiceTestSuite) TestCancelLeaveRequest_Success() {
	ctx := context.Background()
	request := &domain.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		AgencyID:       suite.agencyID,
		UserID:         suite.userID,
		Status:         domain.LeavePending,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.agencyID, domain.RoleEmployee).Return(nil).Once()
	suite.mockRepo.On("FindLeaveRequestByID", ctx, request.LeaveRequestID).Return(request, nil).Once()
	suite.mockRepo.On("UpdateLeaveRequest", ctx, mock.MatchedBy(func(r domain.LeaveRequest) bool {
		return r.Status == domain.LeaveCancelled
	})).Return(nil).Once()

	cancelled, err := suite.service.CancelLeaveRequest(ctx, suite.agencyID, request.LeaveRequestID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.LeaveCancelled, cancelled.Status)
}

func (suite *LeaveServiceTestSuite) TestCreateHoliday_TruncatesDate() {
	ctx := context.Background()
	adminID := uuid.NewString()
	req := dto.CreateHolidayRequest{
		Name: "Founding Day",
		Date: time.Date(2026, time.July, 14, 15, 30, 45, 0, time.UTC),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, adminID, suite.agencyID, domain.RoleAdmin).Return(nil).Once()
	suite.mockRepo.On("SaveHoliday", ctx, mock.MatchedBy(func(h domain.Holiday) bool {
		return h.Date.Equal(time.Date(2026, time.July, 14, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	holiday, err := suite.service.CreateHoliday(ctx, suite.agencyID, req, adminID)

	suite.Require().NoError(err)
	suite.Equal(time.Date(2026, time.July, 14, 0, 0, 0, 0, time.UTC), holiday.Date)
}

func TestLeaveServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeaveServiceTestSuite))
}
