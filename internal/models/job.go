package models

import (
	"database/sql"
	"time"
)

// Job mirrors the jobs table.
type Job struct {
	JobID          string         `db:"job_id"`
	AgencyID       string         `db:"agency_id"`
	ProjectID      sql.NullString `db:"project_id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Status         string         `db:"status"`
	ScheduledStart *time.Time     `db:"scheduled_start"`
	ScheduledEnd   *time.Time     `db:"scheduled_end"`
	AuditFields
}

// TeamAssignment mirrors the team_assignments table. UserName is joined from
// users on reads.
type TeamAssignment struct {
	AssignmentID string    `db:"assignment_id"`
	AgencyID     string    `db:"agency_id"`
	JobID        string    `db:"job_id"`
	UserID       string    `db:"user_id"`
	UserName     string    `db:"user_name"`
	Note         string    `db:"note"`
	AssignedAt   time.Time `db:"assigned_at"`
	AssignedBy   string    `db:"assigned_by"`
}
