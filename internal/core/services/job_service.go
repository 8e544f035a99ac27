package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/google/uuid"
)

// jobService implements the JobSvcFacade interface
type jobService struct {
	BaseService
	jobRepo     portsrepo.JobRepository
	projectRepo portsrepo.ProjectRepository
	agencyRepo  portsrepo.AgencyRepository
	notifier    portssvc.Notifier
}

// NewJobService creates a new job service with the provided dependencies
func NewJobService(
	jobRepo portsrepo.JobRepository,
	projectRepo portsrepo.ProjectRepository,
	agencyRepo portsrepo.AgencyRepository,
	authorizer portssvc.AgencyAuthorizerSvc,
	notifier portssvc.Notifier,
) portssvc.JobSvcFacade {
	return &jobService{
		BaseService: BaseService{AgencyAuthorizer: authorizer},
		jobRepo:     jobRepo,
		projectRepo: projectRepo,
		agencyRepo:  agencyRepo,
		notifier:    notifier,
	}
}

var _ portssvc.JobSvcFacade = (*jobService)(nil)

func (s *jobService) CreateJob(ctx context.Context, agencyID string, req dto.CreateJobRequest, creatorUserID string) (*domain.Job, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		project, err := s.projectRepo.FindProjectByID(ctx, *req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("job project: %w", err)
		}
		if project.AgencyID != agencyID {
			return nil, fmt.Errorf("project %s not found in agency %s: %w", *req.ProjectID, agencyID, apperrors.ErrNotFound)
		}
	}
	if req.ScheduledStart != nil && req.ScheduledEnd != nil && req.ScheduledEnd.Before(*req.ScheduledStart) {
		return nil, fmt.Errorf("scheduled end precedes scheduled start: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	job := domain.Job{
		JobID:          uuid.NewString(),
		AgencyID:       agencyID,
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.JobOpen,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.jobRepo.SaveJob(ctx, job); err != nil {
		s.LogError(ctx, err, "Failed to save job", slog.String("agency_id", agencyID))
		return nil, err
	}
	s.LogInfo(ctx, "Job created", slog.String("job_id", job.JobID))
	return &job, nil
}

func (s *jobService) findAgencyJob(ctx context.Context, agencyID string, jobID string) (*domain.Job, error) {
	job, err := s.jobRepo.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.AgencyID != agencyID {
		return nil, fmt.Errorf("job %s not found in agency %s: %w", jobID, agencyID, apperrors.ErrNotFound)
	}
	return job, nil
}

func (s *jobService) GetJobByID(ctx context.Context, agencyID string, jobID string, requestingUserID string) (*domain.Job, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findAgencyJob(ctx, agencyID, jobID)
}

func (s *jobService) ListJobs(ctx context.Context, agencyID string, requestingUserID string, params dto.ListJobsParams) ([]domain.Job, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.ListJobsByAgency(ctx, agencyID, params.Status, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list jobs", slog.String("agency_id", agencyID))
		return nil, err
	}
	if jobs == nil {
		return []domain.Job{}, nil
	}
	return jobs, nil
}

func (s *jobService) UpdateJob(ctx context.Context, agencyID string, jobID string, req dto.UpdateJobRequest, requestingUserID string) (*domain.Job, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	job, err := s.findAgencyJob(ctx, agencyID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	if req.ScheduledStart != nil {
		job.ScheduledStart = req.ScheduledStart
	}
	if req.ScheduledEnd != nil {
		job.ScheduledEnd = req.ScheduledEnd
	}
	if job.ScheduledStart != nil && job.ScheduledEnd != nil && job.ScheduledEnd.Before(*job.ScheduledStart) {
		return nil, fmt.Errorf("scheduled end precedes scheduled start: %w", apperrors.ErrValidation)
	}
	job.Touch(requestingUserID, time.Now())

	if err := s.jobRepo.UpdateJob(ctx, *job); err != nil {
		s.LogError(ctx, err, "Failed to update job", slog.String("job_id", jobID))
		return nil, err
	}
	return job, nil
}

// AssignMember puts an agency member on a job and notifies them.
func (s *jobService) AssignMember(ctx context.Context, agencyID string, jobID string, req dto.AssignMemberRequest, actingUserID string) (*domain.TeamAssignment, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	job, err := s.findAgencyJob(ctx, agencyID, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.JobDone || job.Status == domain.JobCancelled {
		return nil, fmt.Errorf("cannot assign members to a %s job: %w", job.Status, apperrors.ErrValidation)
	}

	// The assignee must be an active member of the agency.
	membership, err := s.agencyRepo.FindUserAgencyRole(ctx, req.UserID, agencyID)
	if err != nil {
		return nil, fmt.Errorf("assignee membership: %w", err)
	}
	if membership.Role == domain.RoleRemoved {
		return nil, fmt.Errorf("user %s is not an active member of agency %s: %w", req.UserID, agencyID, apperrors.ErrNotFound)
	}

	assignment := domain.TeamAssignment{
		AssignmentID: uuid.NewString(),
		AgencyID:     agencyID,
		JobID:        jobID,
		UserID:       req.UserID,
		UserName:     membership.UserName,
		Note:         req.Note,
		AssignedAt:   time.Now(),
		AssignedBy:   actingUserID,
	}

	if err := s.jobRepo.SaveAssignment(ctx, assignment); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save assignment", slog.String("job_id", jobID))
		}
		return nil, err
	}

	if notifyErr := s.notifier.Notify(ctx, agencyID, req.UserID, domain.NotifyJobAssigned,
		"New job assignment",
		fmt.Sprintf("You have been assigned to %q", job.Title),
		jobID); notifyErr != nil {
		s.LogError(ctx, notifyErr, "Failed to notify assignee", slog.String("job_id", jobID))
	}

	s.LogInfo(ctx, "Member assigned to job",
		slog.String("job_id", jobID),
		slog.String("user_id", req.UserID))
	return &assignment, nil
}

func (s *jobService) UnassignMember(ctx context.Context, agencyID string, jobID string, targetUserID string, actingUserID string) error {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleManager); err != nil {
		return err
	}
	if _, err := s.findAgencyJob(ctx, agencyID, jobID); err != nil {
		return err
	}

	if err := s.jobRepo.DeleteAssignment(ctx, jobID, targetUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete assignment", slog.String("job_id", jobID))
		}
		return err
	}
	return nil
}

func (s *jobService) ListJobAssignments(ctx context.Context, agencyID string, jobID string, requestingUserID string) ([]domain.TeamAssignment, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.findAgencyJob(ctx, agencyID, jobID); err != nil {
		return nil, err
	}

	assignments, err := s.jobRepo.ListAssignmentsByJob(ctx, jobID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list job assignments", slog.String("job_id", jobID))
		return nil, err
	}
	if assignments == nil {
		return []domain.TeamAssignment{}, nil
	}
	return assignments, nil
}

// ListMemberAssignments returns a member's assignments. Members can always
// see their own; seeing another member's requires manager rights.
func (s *jobService) ListMemberAssignments(ctx context.Context, agencyID string, targetUserID string, requestingUserID string) ([]domain.TeamAssignment, error) {
	requiredRole := domain.RoleReadOnly
	if targetUserID != requestingUserID {
		requiredRole = domain.RoleManager
	}
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, requiredRole); err != nil {
		return nil, err
	}

	assignments, err := s.jobRepo.ListAssignmentsByUser(ctx, agencyID, targetUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list member assignments",
			slog.String("agency_id", agencyID),
			slog.String("user_id", targetUserID))
		return nil, err
	}
	if assignments == nil {
		return []domain.TeamAssignment{}, nil
	}
	return assignments, nil
}
