package domain

import "time"

// JobStatus enumerates the lifecycle states of a job.
type JobStatus string

const (
	JobOpen       JobStatus = "OPEN"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobDone       JobStatus = "DONE"
	JobCancelled  JobStatus = "CANCELLED"
)

// Job is a unit of schedulable work, optionally attached to a project.
type Job struct {
	JobID          string     `json:"jobID"` // Primary Key (UUID)
	AgencyID       string     `json:"agencyID"`
	ProjectID      *string    `json:"projectID,omitempty"` // Nil for standalone jobs
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         JobStatus  `json:"status"`
	ScheduledStart *time.Time `json:"scheduledStart,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduledEnd,omitempty"`
	AuditFields
}

// TeamAssignment links an agency member to a job.
type TeamAssignment struct {
	AssignmentID string    `json:"assignmentID"` // Primary Key (UUID)
	AgencyID     string    `json:"agencyID"`
	JobID        string    `json:"jobID"`
	UserID       string    `json:"userID"`
	UserName     string    `json:"userName"` // Populated on reads
	Note         string    `json:"note"`
	AssignedAt   time.Time `json:"assignedAt"`
	AssignedBy   string    `json:"assignedBy"` // UserID reference
}
