package services

import (
	"context"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/agencydesk/agency_desk_app/internal/dto"
)

// ProjectSvcFacade exposes project management operations.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, agencyID string, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)
	GetProjectByID(ctx context.Context, agencyID string, projectID string, requestingUserID string) (*domain.Project, error)
	ListProjects(ctx context.Context, agencyID string, requestingUserID string, limit int, offset int) ([]domain.Project, error)
	UpdateProject(ctx context.Context, agencyID string, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)
}

// JobSvcFacade exposes job and team-assignment operations.
type JobSvcFacade interface {
	CreateJob(ctx context.Context, agencyID string, req dto.CreateJobRequest, creatorUserID string) (*domain.Job, error)
	GetJobByID(ctx context.Context, agencyID string, jobID string, requestingUserID string) (*domain.Job, error)
	ListJobs(ctx context.Context, agencyID string, requestingUserID string, params dto.ListJobsParams) ([]domain.Job, error)
	UpdateJob(ctx context.Context, agencyID string, jobID string, req dto.UpdateJobRequest, requestingUserID string) (*domain.Job, error)

	AssignMember(ctx context.Context, agencyID string, jobID string, req dto.AssignMemberRequest, actingUserID string) (*domain.TeamAssignment, error)
	UnassignMember(ctx context.Context, agencyID string, jobID string, targetUserID string, actingUserID string) error
	ListJobAssignments(ctx context.Context, agencyID string, jobID string, requestingUserID string) ([]domain.TeamAssignment, error)
	ListMemberAssignments(ctx context.Context, agencyID string, targetUserID string, requestingUserID string) ([]domain.TeamAssignment, error)
}
