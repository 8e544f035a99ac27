package models

import (
	"database/sql"
	"time"
)

// LeaveType mirrors the leave_types table.
type LeaveType struct {
	LeaveTypeID   string `db:"leave_type_id"`
	AgencyID      string `db:"agency_id"`
	Name          string `db:"name"`
	AllowanceDays int    `db:"allowance_days"`
	IsPaid        bool   `db:"is_paid"`
	AuditFields
}

// Holiday mirrors the holidays table.
type Holiday struct {
	HolidayID string    `db:"holiday_id"`
	AgencyID  string    `db:"agency_id"`
	Name      string    `db:"name"`
	Date      time.Time `db:"holiday_date"`
	AuditFields
}

// LeaveRequest mirrors the leave_requests table.
type LeaveRequest struct {
	LeaveRequestID string         `db:"leave_request_id"`
	AgencyID       string         `db:"agency_id"`
	UserID         string         `db:"user_id"`
	LeaveTypeID    string         `db:"leave_type_id"`
	StartDate      time.Time      `db:"start_date"`
	EndDate        time.Time      `db:"end_date"`
	WorkingDays    int            `db:"working_days"`
	Reason         string         `db:"reason"`
	Status         string         `db:"status"`
	DecidedBy      sql.NullString `db:"decided_by"`
	DecidedAt      sql.NullTime   `db:"decided_at"`
	DecisionNote   string         `db:"decision_note"`
	AuditFields
}
