package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// CreateJobRequest defines data for creating a job.
type CreateJobRequest struct {
	ProjectID      *string    `json:"projectID"`
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	ScheduledStart *time.Time `json:"scheduledStart"`
	ScheduledEnd   *time.Time `json:"scheduledEnd"`
}

// UpdateJobRequest defines data for updating a job.
type UpdateJobRequest struct {
	Title          *string           `json:"title"`
	Description    *string           `json:"description"`
	Status         *domain.JobStatus `json:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS DONE CANCELLED"`
	ScheduledStart *time.Time        `json:"scheduledStart"`
	ScheduledEnd   *time.Time        `json:"scheduledEnd"`
}

// ListJobsParams defines query parameters for listing jobs.
type ListJobsParams struct {
	Status *domain.JobStatus `form:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS DONE CANCELLED"`
	Limit  int               `form:"limit,default=20"`
	Offset int               `form:"offset,default=0"`
}

// AssignMemberRequest assigns an agency member to a job.
type AssignMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
	Note   string `json:"note"`
}

// JobResponse defines data returned for a job.
type JobResponse struct {
	JobID          string           `json:"jobID"`
	AgencyID       string           `json:"agencyID"`
	ProjectID      *string          `json:"projectID,omitempty"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Status         domain.JobStatus `json:"status"`
	ScheduledStart *time.Time       `json:"scheduledStart,omitempty"`
	ScheduledEnd   *time.Time       `json:"scheduledEnd,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// ToJobResponse converts domain.Job to DTO.
func ToJobResponse(j *domain.Job) JobResponse {
	return JobResponse{
		JobID:          j.JobID,
		AgencyID:       j.AgencyID,
		ProjectID:      j.ProjectID,
		Title:          j.Title,
		Description:    j.Description,
		Status:         j.Status,
		ScheduledStart: j.ScheduledStart,
		ScheduledEnd:   j.ScheduledEnd,
		CreatedAt:      j.CreatedAt,
	}
}

// ListJobsResponse wraps a list of jobs.
type ListJobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

// ToListJobsResponse converts a slice of domain.Job to DTO.
func ToListJobsResponse(js []domain.Job) ListJobsResponse {
	list := make([]JobResponse, len(js))
	for i, j := range js {
		list[i] = ToJobResponse(&j)
	}
	return ListJobsResponse{Jobs: list}
}

// AssignmentResponse defines data returned for a team assignment.
type AssignmentResponse struct {
	AssignmentID string    `json:"assignmentID"`
	AgencyID     string    `json:"agencyID"`
	JobID        string    `json:"jobID"`
	UserID       string    `json:"userID"`
	UserName     string    `json:"userName"`
	Note         string    `json:"note"`
	AssignedAt   time.Time `json:"assignedAt"`
	AssignedBy   string    `json:"assignedBy"`
}

// ToAssignmentResponse converts domain.TeamAssignment to DTO.
func ToAssignmentResponse(a *domain.TeamAssignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID: a.AssignmentID,
		AgencyID:     a.AgencyID,
		JobID:        a.JobID,
		UserID:       a.UserID,
		UserName:     a.UserName,
		Note:         a.Note,
		AssignedAt:   a.AssignedAt,
		AssignedBy:   a.AssignedBy,
	}
}

// ListAssignmentsResponse wraps a list of assignments.
type ListAssignmentsResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
}

// ToListAssignmentsResponse converts a slice of domain.TeamAssignment to DTO.
func ToListAssignmentsResponse(as []domain.TeamAssignment) ListAssignmentsResponse {
	list := make([]AssignmentResponse, len(as))
	for i, a := range as {
		list[i] = ToAssignmentResponse(&a)
	}
	return ListAssignmentsResponse{Assignments: list}
}
