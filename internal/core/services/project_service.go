package services

import (
	"context"
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

// projectService implements the ProjectSvcFacade interface
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepository
	clientRepo  portsrepo.ClientRepository
}

// NewProjectService creates a new project service with the provided dependencies
func NewProjectService(projectRepo portsrepo.ProjectRepository, clientRepo portsrepo.ClientRepository, authorizer portssvc.AgencyAuthorizerSvc) portssvc.ProjectSvcFacade {
	return &projectService{
		BaseService: BaseService{AgencyAuthorizer: authorizer},
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, agencyID string, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	// The client must exist and belong to this agency.
	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("project client: %w", err)
	}
	if client.AgencyID != agencyID {
		return nil, fmt.Errorf("client %s not found in agency %s: %w", req.ClientID, agencyID, apperrors.ErrNotFound)
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("project end date precedes start date: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		AgencyID:    agencyID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectPlanned,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("agency_id", agencyID))
		return nil, err
	}
	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID))
	return &project, nil
}

func (s *projectService) findAgencyProject(ctx context.Context, agencyID string, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.AgencyID != agencyID {
		return nil, fmt.Errorf("project %s not found in agency %s: %w", projectID, agencyID, apperrors.ErrNotFound)
	}
	return project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, agencyID string, projectID string, requestingUserID string) (*domain.Project, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findAgencyProject(ctx, agencyID, projectID)
}

func (s *projectService) ListProjects(ctx context.Context, agencyID string, requestingUserID string, limit int, offset int) ([]domain.Project, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.ListProjectsByAgency(ctx, agencyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects", slog.String("agency_id", agencyID))
		return nil, err
	}
	if projects == nil {
		return []domain.Project{}, nil
	}
	return projects, nil
}

func (s *projectService) UpdateProject(ctx context.Context, agencyID string, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	project, err := s.findAgencyProject(ctx, agencyID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		return nil, fmt.Errorf("project end date precedes start date: %w", apperrors.ErrValidation)
	}
	project.Touch(requestingUserID, time.Now())

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, err
	}
	return project, nil
}
