package services

import (
	"context"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/agencydesk/agency_desk_app/internal/dto"
)

// LeaveSvcFacade exposes leave types, holidays and leave request handling.
type LeaveSvcFacade interface {
	CreateLeaveType(ctx context.Context, agencyID string, req dto.CreateLeaveTypeRequest, actingUserID string) (*domain.LeaveType, error)
	ListLeaveTypes(ctx context.Context, agencyID string, requestingUserID string) ([]domain.LeaveType, error)
	UpdateLeaveType(ctx context.Context, agencyID string, leaveTypeID string, req dto.UpdateLeaveTypeRequest, actingUserID string) (*domain.LeaveType, error)
	DeleteLeaveType(ctx context.Context, agencyID string, leaveTypeID string, actingUserID string) error

	CreateHoliday(ctx context.Context, agencyID string, req dto.CreateHolidayRequest, actingUserID string) (*domain.Holiday, error)
	DeleteHoliday(ctx context.Context, agencyID string, holidayID string, actingUserID string) error
	ListHolidays(ctx context.Context, agencyID string, requestingUserID string, year int) ([]domain.Holiday, error)

	ApplyForLeave(ctx context.Context, agencyID string, req dto.ApplyLeaveRequest, requestingUserID string) (*domain.LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, agencyID string, requestID string, requestingUserID string) (*domain.LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, agencyID string, requestingUserID string, params dto.ListLeaveRequestsParams) ([]domain.LeaveRequest, error)
	ListMyLeaveRequests(ctx context.Context, agencyID string, requestingUserID string) ([]domain.LeaveRequest, error)
	// DecideLeaveRequest approves or rejects a PENDING request. Deciding your
	// own request is a validation error.
	DecideLeaveRequest(ctx context.Context, agencyID string, requestID string, approve bool, note string, actingUserID string) (*domain.LeaveRequest, error)
	CancelLeaveRequest(ctx context.Context, agencyID string, requestID string, requestingUserID string) (*domain.LeaveRequest, error)
}

// ReimbursementSvcFacade exposes expense reimbursement handling.
type ReimbursementSvcFacade interface {
	SubmitReimbursement(ctx context.Context, agencyID string, req dto.SubmitReimbursementRequest, requestingUserID string) (*domain.Reimbursement, error)
	GetReimbursement(ctx context.Context, agencyID string, reimbursementID string, requestingUserID string) (*domain.Reimbursement, error)
	ListReimbursements(ctx context.Context, agencyID string, requestingUserID string, params dto.ListReimbursementsParams) ([]domain.Reimbursement, error)
	ListMyReimbursements(ctx context.Context, agencyID string, requestingUserID string) ([]domain.Reimbursement, error)
	DecideReimbursement(ctx context.Context, agencyID string, reimbursementID string, approve bool, note string, actingUserID string) (*domain.Reimbursement, error)
	// MarkReimbursementPaid settles an APPROVED reimbursement.
	MarkReimbursementPaid(ctx context.Context, agencyID string, reimbursementID string, actingUserID string) (*domain.Reimbursement, error)
}
