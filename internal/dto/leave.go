package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// --- Leave Type DTOs ---

// CreateLeaveTypeRequest defines data for creating a leave type.
type CreateLeaveTypeRequest struct {
	Name          string `json:"name" binding:"required"`
	AllowanceDays int    `json:"allowanceDays" binding:"required,gt=0"`
	IsPaid        bool   `json:"isPaid"`
}

// UpdateLeaveTypeRequest defines data for updating a leave type.
type UpdateLeaveTypeRequest struct {
	Name          *string `json:"name"`
	AllowanceDays *int    `json:"allowanceDays" binding:"omitempty,gt=0"`
	IsPaid        *bool   `json:"isPaid"`
}

// LeaveTypeResponse defines data returned for a leave type.
type LeaveTypeResponse struct {
	LeaveTypeID   string `json:"leaveTypeID"`
	AgencyID      string `json:"agencyID"`
	Name          string `json:"name"`
	AllowanceDays int    `json:"allowanceDays"`
	IsPaid        bool   `json:"isPaid"`
}

// ToLeaveTypeResponse converts domain.LeaveType to DTO.
func ToLeaveTypeResponse(lt *domain.LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		LeaveTypeID:   lt.LeaveTypeID,
		AgencyID:      lt.AgencyID,
		Name:          lt.Name,
		AllowanceDays: lt.AllowanceDays,
		IsPaid:        lt.IsPaid,
	}
}

// ListLeaveTypesResponse wraps a list of leave types.
type ListLeaveTypesResponse struct {
	LeaveTypes []LeaveTypeResponse `json:"leaveTypes"`
}

// ToListLeaveTypesResponse converts a slice of domain.LeaveType to DTO.
func ToListLeaveTypesResponse(lts []domain.LeaveType) ListLeaveTypesResponse {
	list := make([]LeaveTypeResponse, len(lts))
	for i := range lts {
		list[i] = ToLeaveTypeResponse(&lts[i])
	}
	return ListLeaveTypesResponse{LeaveTypes: list}
}

// --- Holiday DTOs ---

// CreateHolidayRequest defines data for adding a holiday to the calendar.
type CreateHolidayRequest struct {
	Name string    `json:"name" binding:"required"`
	Date time.Time `json:"date" binding:"required"`
}

// HolidayResponse defines data returned for a holiday.
type HolidayResponse struct {
	HolidayID string    `json:"holidayID"`
	AgencyID  string    `json:"agencyID"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
}

// ToHolidayResponse converts domain.Holiday to DTO.
func ToHolidayResponse(h *domain.Holiday) HolidayResponse {
	return HolidayResponse{
		HolidayID: h.HolidayID,
		AgencyID:  h.AgencyID,
		Name:      h.Name,
		Date:      h.Date,
	}
}

// ListHolidaysParams defines query parameters for listing holidays.
// A zero Year means the current year.
type ListHolidaysParams struct {
	Year int `form:"year" binding:"omitempty,min=1970,max=9999"`
}

// ListHolidaysResponse wraps a list of holidays.
type ListHolidaysResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// ToListHolidaysResponse converts a slice of domain.Holiday to DTO.
func ToListHolidaysResponse(hs []domain.Holiday) ListHolidaysResponse {
	list := make([]HolidayResponse, len(hs))
	for i := range hs {
		list[i] = ToHolidayResponse(&hs[i])
	}
	return ListHolidaysResponse{Holidays: list}
}

// --- Leave Request DTOs ---

// ApplyLeaveRequest defines data for applying for leave.
type ApplyLeaveRequest struct {
	LeaveTypeID string    `json:"leaveTypeID" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	Reason      string    `json:"reason"`
}

// DecideLeaveRequest carries an approval/rejection note.
type DecideLeaveRequest struct {
	Note string `json:"note"`
}

// ListLeaveRequestsParams defines query parameters for listing leave requests.
type ListLeaveRequestsParams struct {
	Status *domain.LeaveStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	Limit  int                 `form:"limit,default=20"`
	Offset int                 `form:"offset,default=0"`
}

// LeaveRequestResponse defines data returned for a leave request.
type LeaveRequestResponse struct {
	LeaveRequestID string             `json:"leaveRequestID"`
	AgencyID       string             `json:"agencyID"`
	UserID         string             `json:"userID"`
	LeaveTypeID    string             `json:"leaveTypeID"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	WorkingDays    int                `json:"workingDays"`
	Reason         string             `json:"reason"`
	Status         domain.LeaveStatus `json:"status"`
	DecidedBy      *string            `json:"decidedBy,omitempty"`
	DecidedAt      *time.Time         `json:"decidedAt,omitempty"`
	DecisionNote   string             `json:"decisionNote,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// ToLeaveRequestResponse converts domain.LeaveRequest to DTO.
func ToLeaveRequestResponse(lr *domain.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		LeaveRequestID: lr.LeaveRequestID,
		AgencyID:       lr.AgencyID,
		UserID:         lr.UserID,
		LeaveTypeID:    lr.LeaveTypeID,
		StartDate:      lr.StartDate,
		EndDate:        lr.EndDate,
		WorkingDays:    lr.WorkingDays,
		Reason:         lr.Reason,
		Status:         lr.Status,
		DecidedBy:      lr.DecidedBy,
		DecidedAt:      lr.DecidedAt,
		DecisionNote:   lr.DecisionNote,
		CreatedAt:      lr.CreatedAt,
	}
}

// ListLeaveRequestsResponse wraps a list of leave requests.
type ListLeaveRequestsResponse struct {
	LeaveRequests []LeaveRequestResponse `json:"leaveRequests"`
}

// ToListLeaveRequestsResponse converts a slice of domain.LeaveRequest to DTO.
func ToListLeaveRequestsResponse(lrs []domain.LeaveRequest) ListLeaveRequestsResponse {
	list := make([]LeaveRequestResponse, len(lrs))
	for i := range lrs {
		list[i] = ToLeaveRequestResponse(&lrs[i])
	}
	return ListLeaveRequestsResponse{LeaveRequests: list}
}
