package repositories

import (
	"context"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// ProjectRepository persists projects.
type ProjectRepository interface {
	SaveProject(ctx context.Context, project domain.Project) error
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjectsByAgency(ctx context.Context, agencyID string, limit int, offset int) ([]domain.Project, error)
	ListProjectsByClient(ctx context.Context, agencyID string, clientID string) ([]domain.Project, error)
	UpdateProject(ctx context.Context, project domain.Project) error
}

// JobRepository persists jobs and team assignments.
type JobRepository interface {
	SaveJob(ctx context.Context, job domain.Job) error
	FindJobByID(ctx context.Context, jobID string) (*domain.Job, error)
	ListJobsByAgency(ctx context.Context, agencyID string, status *domain.JobStatus, limit int, offset int) ([]domain.Job, error)
	UpdateJob(ctx context.Context, job domain.Job) error

	SaveAssignment(ctx context.Context, assignment domain.TeamAssignment) error
	DeleteAssignment(ctx context.Context, jobID string, userID string) error
	ListAssignmentsByJob(ctx context.Context, jobID string) ([]domain.TeamAssignment, error)
	ListAssignmentsByUser(ctx context.Context, agencyID string, userID string) ([]domain.TeamAssignment, error)
}
