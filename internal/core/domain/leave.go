package domain

import "time"

// LeaveType is a category of leave an agency offers (annual, sick, unpaid...).
type LeaveType struct {
	LeaveTypeID   string `json:"leaveTypeID"` // Primary Key (UUID)
	AgencyID      string `json:"agencyID"`
	Name          string `json:"name"`
	AllowanceDays int    `json:"allowanceDays"` // Working days per calendar year
	IsPaid        bool   `json:"isPaid"`
	AuditFields
}

// Holiday is a non-working day in an agency's calendar.
type Holiday struct {
	HolidayID string    `json:"holidayID"` // Primary Key (UUID)
	AgencyID  string    `json:"agencyID"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"` // Date only, stored at midnight UTC
	AuditFields
}

// LeaveStatus enumerates the lifecycle states of a leave request.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "PENDING"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

// LeaveRequest is an employee's request for time off.
type LeaveRequest struct {
	LeaveRequestID string      `json:"leaveRequestID"` // Primary Key (UUID)
	AgencyID       string      `json:"agencyID"`
	UserID         string      `json:"userID"` // The requester
	LeaveTypeID    string      `json:"leaveTypeID"`
	StartDate      time.Time   `json:"startDate"`
	EndDate        time.Time   `json:"endDate"`
	WorkingDays    int         `json:"workingDays"` // Weekends and agency holidays excluded
	Reason         string      `json:"reason"`
	Status         LeaveStatus `json:"status"`
	DecidedBy      *string     `json:"decidedBy,omitempty"`
	DecidedAt      *time.Time  `json:"decidedAt,omitempty"`
	DecisionNote   string      `json:"decisionNote,omitempty"`
	AuditFields
}

// CountWorkingDays returns the number of working days between start and end
// inclusive, skipping Saturdays, Sundays and the given holiday dates.
// Dates are compared by calendar day in UTC.
func CountWorkingDays(start, end time.Time, holidays []time.Time) int {
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[h.UTC().Format("2006-01-02")] = struct{}{}
	}

	days := 0
	for d := start.UTC().Truncate(24 * time.Hour); !d.After(end.UTC()); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, isHoliday := holidaySet[d.Format("2006-01-02")]; isHoliday {
			continue
		}
		days++
	}
	return days
}
