package repositories

import (
	"context"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// LeaveRepository persists leave types, holidays and leave requests.
type LeaveRepository interface {
	SaveLeaveType(ctx context.Context, leaveType domain.LeaveType) error
	FindLeaveTypeByID(ctx context.Context, leaveTypeID string) (*domain.LeaveType, error)
	ListLeaveTypesByAgency(ctx context.Context, agencyID string) ([]domain.LeaveType, error)
	UpdateLeaveType(ctx context.Context, leaveType domain.LeaveType) error
	DeleteLeaveType(ctx context.Context, leaveTypeID string) error

	SaveHoliday(ctx context.Context, holiday domain.Holiday) error
	DeleteHoliday(ctx context.Context, holidayID string) error
	ListHolidaysByAgency(ctx context.Context, agencyID string, from time.Time, to time.Time) ([]domain.Holiday, error)

	SaveLeaveRequest(ctx context.Context, request domain.LeaveRequest) error
	FindLeaveRequestByID(ctx context.Context, requestID string) (*domain.LeaveRequest, error)
	ListLeaveRequestsByAgency(ctx context.Context, agencyID string, status *domain.LeaveStatus, limit int, offset int) ([]domain.LeaveRequest, error)
	ListLeaveRequestsByUser(ctx context.Context, agencyID string, userID string) ([]domain.LeaveRequest, error)
	// FindOverlappingRequests returns the requester's PENDING/APPROVED requests
	// that intersect the [start, end] date range.
	FindOverlappingRequests(ctx context.Context, agencyID string, userID string, start time.Time, end time.Time) ([]domain.LeaveRequest, error)
	// SumApprovedDays totals the working days already approved for the user and
	// leave type within the given calendar year.
	SumApprovedDays(ctx context.Context, agencyID string, userID string, leaveTypeID string, year int) (int, error)
	UpdateLeaveRequest(ctx context.Context, request domain.LeaveRequest) error
}

// ReimbursementRepository persists reimbursement requests.
type ReimbursementRepository interface {
	SaveReimbursement(ctx context.Context, reimbursement domain.Reimbursement) error
	FindReimbursementByID(ctx context.Context, reimbursementID string) (*domain.Reimbursement, error)
	ListReimbursementsByAgency(ctx context.Context, agencyID string, status *domain.ReimbursementStatus, limit int, offset int) ([]domain.Reimbursement, error)
	ListReimbursementsByUser(ctx context.Context, agencyID string, userID string) ([]domain.Reimbursement, error)
	UpdateReimbursement(ctx context.Context, reimbursement domain.Reimbursement) error
}
