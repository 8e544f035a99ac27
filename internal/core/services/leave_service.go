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
)

// leaveService implements the LeaveSvcFacade interface
type leaveService struct {
	BaseService
	leaveRepo portsrepo.LeaveRepository
	notifier  portssvc.Notifier
}

// NewLeaveService creates a new leave service with the provided dependencies
func NewLeaveService(leaveRepo portsrepo.LeaveRepository, authorizer portssvc.AgencyAuthorizerSvc, notifier portssvc.Notifier) portssvc.LeaveSvcFacade {
	return &leaveService{
		BaseService: BaseService{AgencyAuthorizer: authorizer},
		leaveRepo:   leaveRepo,
		notifier:    notifier,
	}
}

var _ portssvc.LeaveSvcFacade = (*leaveService)(nil)

func (s *leaveService) CreateLeaveType(ctx context.Context, agencyID string, req dto.CreateLeaveTypeRequest, actingUserID string) (*domain.LeaveType, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	leaveType := domain.LeaveType{
		LeaveTypeID:   uuid.NewString(),
		AgencyID:      agencyID,
		Name:          req.Name,
		AllowanceDays: req.AllowanceDays,
		IsPaid:        req.IsPaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.leaveRepo.SaveLeaveType(ctx, leaveType); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save leave type", slog.String("agency_id", agencyID))
		}
		return nil, err
	}
	return &leaveType, nil
}

func (s *leaveService) ListLeaveTypes(ctx context.Context, agencyID string, requestingUserID string) ([]domain.LeaveType, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	types, err := s.leaveRepo.ListLeaveTypesByAgency(ctx, agencyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list leave types", slog.String("agency_id", agencyID))
		return nil, err
	}
	if types == nil {
		return []domain.LeaveType{}, nil
	}
	return types, nil
}

func (s *leaveService) UpdateLeaveType(ctx context.Context, agencyID string, leaveTypeID string, req dto.UpdateLeaveTypeRequest, actingUserID string) (*domain.LeaveType, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	leaveType, err := s.leaveRepo.FindLeaveTypeByID(ctx, leaveTypeID)
	if err != nil {
		return nil, err
	}
	if leaveType.AgencyID != agencyID {
		return nil, fmt.Errorf("leave type %s not found in agency %s: %w", leaveTypeID, agencyID, apperrors.ErrNotFound)
	}

	if req.Name != nil {
		leaveType.Name = *req.Name
	}
	if req.AllowanceDays != nil {
		leaveType.AllowanceDays = *req.AllowanceDays
	}
	if req.IsPaid != nil {
		leaveType.IsPaid = *req.IsPaid
	}
	leaveType.Touch(actingUserID, time.Now())

	if err := s.leaveRepo.UpdateLeaveType(ctx, *leaveType); err != nil {
		s.LogError(ctx, err, "Failed to update leave type", slog.String("leave_type_id", leaveTypeID))
		return nil, err
	}
	return leaveType, nil
}

// DeleteLeaveType removes an unused leave type. Types referenced by leave
// requests cannot be deleted; the repository reports that as a validation
// error.
func (s *leaveService) DeleteLeaveType(ctx context.Context, agencyID string, leaveTypeID string, actingUserID string) error {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleAdmin); err != nil {
		return err
	}

	leaveType, err := s.leaveRepo.FindLeaveTypeByID(ctx, leaveTypeID)
	if err != nil {
		return err
	}
	if leaveType.AgencyID != agencyID {
		return fmt.Errorf("leave type %s not found in agency %s: %w", leaveTypeID, agencyID, apperrors.ErrNotFound)
	}

	if err := s.leaveRepo.DeleteLeaveType(ctx, leaveTypeID); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete leave type", slog.String("leave_type_id", leaveTypeID))
		}
		return err
	}
	return nil
}

func (s *leaveService) CreateHoliday(ctx context.Context, agencyID string, req dto.CreateHolidayRequest, actingUserID string) (*domain.Holiday, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	holiday := domain.Holiday{
		HolidayID: uuid.NewString(),
		AgencyID:  agencyID,
		Name:      req.Name,
		Date:      req.Date.UTC().Truncate(24 * time.Hour),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.leaveRepo.SaveHoliday(ctx, holiday); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save holiday", slog.String("agency_id", agencyID))
		}
		return nil, err
	}
	return &holiday, nil
}

func (s *leaveService) DeleteHoliday(ctx context.Context, agencyID string, holidayID string, actingUserID string) error {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.leaveRepo.DeleteHoliday(ctx, holidayID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete holiday", slog.String("holiday_id", holidayID))
		}
		return err
	}
	return nil
}

func (s *leaveService) ListHolidays(ctx context.Context, agencyID string, requestingUserID string, year int) ([]domain.Holiday, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	holidays, err := s.leaveRepo.ListHolidaysByAgency(ctx, agencyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list holidays", slog.String("agency_id", agencyID))
		return nil, err
	}
	if holidays == nil {
		return []domain.Holiday{}, nil
	}
	return holidays, nil
}

// ApplyForLeave files a leave request. The working-day count excludes
// weekends and agency holidays, must be positive, must not overlap another
// pending or approved request, and must fit within the remaining yearly
// allowance for the leave type.
func (s *leaveService) ApplyForLeave(ctx context.Context, agencyID string, req dto.ApplyLeaveRequest, requestingUserID string) (*domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleEmployee); err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("leave end date precedes start date: %w", apperrors.ErrValidation)
	}
	if req.StartDate.UTC().Year() != req.EndDate.UTC().Year() {
		return nil, fmt.Errorf("leave requests cannot span calendar years: %w", apperrors.ErrValidation)
	}

	leaveType, err := s.leaveRepo.FindLeaveTypeByID(ctx, req.LeaveTypeID)
	if err != nil {
		return nil, fmt.Errorf("leave type: %w", err)
	}
	if leaveType.AgencyID != agencyID {
		return nil, fmt.Errorf("leave type %s not found in agency %s: %w", req.LeaveTypeID, agencyID, apperrors.ErrNotFound)
	}

	holidays, err := s.leaveRepo.ListHolidaysByAgency(ctx, agencyID, req.StartDate, req.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to load holidays for leave request", slog.String("agency_id", agencyID))
		return nil, err
	}
	holidayDates := make([]time.Time, len(holidays))
	for i, h := range holidays {
		holidayDates[i] = h.Date
	}

	workingDays := domain.CountWorkingDays(req.StartDate, req.EndDate, holidayDates)
	if workingDays == 0 {
		return nil, fmt.Errorf("requested range contains no working days: %w", apperrors.ErrValidation)
	}

	overlapping, err := s.leaveRepo.FindOverlappingRequests(ctx, agencyID, requestingUserID, req.StartDate, req.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to check overlapping leave requests", slog.String("user_id", requestingUserID))
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, fmt.Errorf("requested range overlaps an existing leave request: %w", apperrors.ErrValidation)
	}

	year := req.StartDate.UTC().Year()
	usedDays, err := s.leaveRepo.SumApprovedDays(ctx, agencyID, requestingUserID, req.LeaveTypeID, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum approved leave days", slog.String("user_id", requestingUserID))
		return nil, err
	}
	if usedDays+workingDays > leaveType.AllowanceDays {
		return nil, fmt.Errorf("request of %d days exceeds remaining allowance of %d days: %w",
			workingDays, leaveType.AllowanceDays-usedDays, apperrors.ErrValidation)
	}

	now := time.Now()
	request := domain.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		AgencyID:       agencyID,
		UserID:         requestingUserID,
		LeaveTypeID:    req.LeaveTypeID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		WorkingDays:    workingDays,
		Reason:         req.Reason,
		Status:         domain.LeavePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.leaveRepo.SaveLeaveRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save leave request", slog.String("user_id", requestingUserID))
		return nil, err
	}
	s.LogInfo(ctx, "Leave request filed",
		slog.String("leave_request_id", request.LeaveRequestID),
		slog.Int("working_days", workingDays))
	return &request, nil
}

func (s *leaveService) findAgencyLeaveRequest(ctx context.Context, agencyID string, requestID string) (*domain.LeaveRequest, error) {
	request, err := s.leaveRepo.FindLeaveRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.AgencyID != agencyID {
		return nil, fmt.Errorf("leave request %s not found in agency %s: %w", requestID, agencyID, apperrors.ErrNotFound)
	}
	return request, nil
}

// GetLeaveRequest returns a single request. Requesters see their own;
// managers see everyone's.
func (s *leaveService) GetLeaveRequest(ctx context.Context, agencyID string, requestID string, requestingUserID string) (*domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	request, err := s.findAgencyLeaveRequest(ctx, agencyID, requestID)
	if err != nil {
		return nil, err
	}
	if request.UserID != requestingUserID {
		if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
			return nil, err
		}
	}
	return request, nil
}

func (s *leaveService) ListLeaveRequests(ctx context.Context, agencyID string, requestingUserID string, params dto.ListLeaveRequestsParams) ([]domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}
	requests, err := s.leaveRepo.ListLeaveRequestsByAgency(ctx, agencyID, params.Status, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list leave requests", slog.String("agency_id", agencyID))
		return nil, err
	}
	if requests == nil {
		return []domain.LeaveRequest{}, nil
	}
	return requests, nil
}

func (s *leaveService) ListMyLeaveRequests(ctx context.Context, agencyID string, requestingUserID string) ([]domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	requests, err := s.leaveRepo.ListLeaveRequestsByUser(ctx, agencyID, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list own leave requests", slog.String("user_id", requestingUserID))
		return nil, err
	}
	if requests == nil {
		return []domain.LeaveRequest{}, nil
	}
	return requests, nil
}

// DecideLeaveRequest approves or rejects a pending request. Deciders need
// manager rights and cannot decide their own requests. The allowance is
// re-checked on approval: two pending requests that each fit on their own
// must not both be approved past the yearly allowance.
func (s *leaveService) DecideLeaveRequest(ctx context.Context, agencyID string, requestID string, approve bool, note string, actingUserID string) (*domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	request, err := s.findAgencyLeaveRequest(ctx, agencyID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.LeavePending {
		return nil, fmt.Errorf("leave request is already %s: %w", request.Status, apperrors.ErrValidation)
	}
	if request.UserID == actingUserID {
		return nil, fmt.Errorf("requesters cannot decide their own leave: %w", apperrors.ErrValidation)
	}

	if approve {
		leaveType, err := s.leaveRepo.FindLeaveTypeByID(ctx, request.LeaveTypeID)
		if err != nil {
			return nil, fmt.Errorf("leave type: %w", err)
		}
		year := request.StartDate.UTC().Year()
		usedDays, err := s.leaveRepo.SumApprovedDays(ctx, agencyID, request.UserID, request.LeaveTypeID, year)
		if err != nil {
			s.LogError(ctx, err, "Failed to sum approved leave days", slog.String("user_id", request.UserID))
			return nil, err
		}
		if usedDays+request.WorkingDays > leaveType.AllowanceDays {
			return nil, fmt.Errorf("approving %d days would exceed the remaining allowance of %d days: %w",
				request.WorkingDays, leaveType.AllowanceDays-usedDays, apperrors.ErrValidation)
		}
	}

	now := time.Now()
	if approve {
		request.Status = domain.LeaveApproved
	} else {
		request.Status = domain.LeaveRejected
	}
	request.DecidedBy = &actingUserID
	request.DecidedAt = &now
	request.DecisionNote = note
	request.Touch(actingUserID, now)

	if err := s.leaveRepo.UpdateLeaveRequest(ctx, *request); err != nil {
		s.LogError(ctx, err, "Failed to update leave request", slog.String("leave_request_id", requestID))
		return nil, err
	}

	if notifyErr := s.notifier.Notify(ctx, agencyID, request.UserID, domain.NotifyLeaveDecision,
		fmt.Sprintf("Leave request %s", request.Status),
		fmt.Sprintf("Your leave request from %s to %s was %s",
			request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"), request.Status),
		requestID); notifyErr != nil {
		s.LogError(ctx, notifyErr, "Failed to notify about leave decision", slog.String("leave_request_id", requestID))
	}

	s.LogInfo(ctx, "Leave request decided",
		slog.String("leave_request_id", requestID),
		slog.String("status", string(request.Status)))
	return request, nil
}

// CancelLeaveRequest lets a requester withdraw their own pending request.
func (s *leaveService) CancelLeaveRequest(ctx context.Context, agencyID string, requestID string, requestingUserID string) (*domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleEmployee); err != nil {
		return nil, err
	}

	request, err := s.findAgencyLeaveRequest(ctx, agencyID, requestID)
	if err != nil {
		return nil, err
	}
	if request.UserID != requestingUserID {
		return nil, fmt.Errorf("only the requester can cancel a leave request: %w", apperrors.ErrForbidden)
	}
	if request.Status != domain.LeavePending {
		return nil, fmt.Errorf("only pending leave requests can be cancelled, request is %s: %w", request.Status, apperrors.ErrValidation)
	}

	request.Status = domain.LeaveCancelled
	request.Touch(requestingUserID, time.Now())

	if err := s.leaveRepo.UpdateLeaveRequest(ctx, *request); err != nil {
		s.LogError(ctx, err, "Failed to cancel leave request", slog.String("leave_request_id", requestID))
		return nil, err
	}
	return request, nil
}
