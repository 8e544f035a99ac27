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
	"github.com/shopspring/decimal"
)

// leadService implements the LeadSvcFacade interface
type leadService struct {
	BaseService
	leadRepo portsrepo.LeadRepository
}

// NewLeadService creates a new lead service with the provided dependencies
func NewLeadService(leadRepo portsrepo.LeadRepository, authorizer portssvc.AgencyAuthorizerSvc) portssvc.LeadSvcFacade {
	return &leadService{
		BaseService: BaseService{AgencyAuthorizer: authorizer},
		leadRepo:    leadRepo,
	}
}

var _ portssvc.LeadSvcFacade = (*leadService)(nil)

func (s *leadService) CreateLead(ctx context.Context, agencyID string, req dto.CreateLeadRequest, creatorUserID string) (*domain.Lead, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, agencyID, domain.RoleEmployee); err != nil {
		return nil, err
	}

	now := time.Now()
	lead := domain.Lead{
		LeadID:         uuid.NewString(),
		AgencyID:       agencyID,
		Name:           req.Name,
		ContactName:    req.ContactName,
		Email:          req.Email,
		Phone:          req.Phone,
		Source:         req.Source,
		EstimatedValue: req.EstimatedValue,
		Status:         domain.LeadNew,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.leadRepo.SaveLead(ctx, lead); err != nil {
		s.LogError(ctx, err, "Failed to save lead", slog.String("agency_id", agencyID))
		return nil, err
	}
	s.LogInfo(ctx, "Lead created", slog.String("lead_id", lead.LeadID))
	return &lead, nil
}

func (s *leadService) findAgencyLead(ctx context.Context, agencyID string, leadID string) (*domain.Lead, error) {
	lead, err := s.leadRepo.FindLeadByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.AgencyID != agencyID {
		return nil, fmt.Errorf("lead %s not found in agency %s: %w", leadID, agencyID, apperrors.ErrNotFound)
	}
	return lead, nil
}

func (s *leadService) GetLeadByID(ctx context.Context, agencyID string, leadID string, requestingUserID string) (*domain.Lead, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findAgencyLead(ctx, agencyID, leadID)
}

func (s *leadService) ListLeads(ctx context.Context, agencyID string, requestingUserID string, params dto.ListLeadsParams) ([]domain.Lead, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	leads, err := s.leadRepo.ListLeadsByAgency(ctx, agencyID, params.Status, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list leads", slog.String("agency_id", agencyID))
		return nil, err
	}
	if leads == nil {
		return []domain.Lead{}, nil
	}
	return leads, nil
}

func (s *leadService) UpdateLead(ctx context.Context, agencyID string, leadID string, req dto.UpdateLeadRequest, requestingUserID string) (*domain.Lead, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleEmployee); err != nil {
		return nil, err
	}

	lead, err := s.findAgencyLead(ctx, agencyID, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Status == domain.LeadConverted {
		return nil, fmt.Errorf("converted leads are read-only: %w", apperrors.ErrValidation)
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.ContactName != nil {
		lead.ContactName = *req.ContactName
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.EstimatedValue != nil {
		lead.EstimatedValue = *req.EstimatedValue
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	lead.Touch(requestingUserID, time.Now())

	if err := s.leadRepo.UpdateLead(ctx, *lead); err != nil {
		s.LogError(ctx, err, "Failed to update lead", slog.String("lead_id", leadID))
		return nil, err
	}
	return lead, nil
}

// UpdateLeadStatus moves a lead through its pipeline. CONVERTED is never a
// valid target here; conversion goes through ConvertLead.
func (s *leadService) UpdateLeadStatus(ctx context.Context, agencyID string, leadID string, status domain.LeadStatus, requestingUserID string) (*domain.Lead, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleEmployee); err != nil {
		return nil, err
	}
	if status == domain.LeadConverted {
		return nil, fmt.Errorf("leads are converted via the convert operation, not a status update: %w", apperrors.ErrValidation)
	}

	lead, err := s.findAgencyLead(ctx, agencyID, leadID)
	if err != nil {
		return nil, err
	}
	if !lead.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("lead status cannot change from %s to %s: %w", lead.Status, status, apperrors.ErrValidation)
	}

	lead.Status = status
	lead.Touch(requestingUserID, time.Now())

	if err := s.leadRepo.UpdateLead(ctx, *lead); err != nil {
		s.LogError(ctx, err, "Failed to update lead status", slog.String("lead_id", leadID))
		return nil, err
	}
	return lead, nil
}

// ConvertLead turns a qualified lead into a client, optionally with an
// initial project, in a single transaction. The repository guards against a
// concurrent conversion of the same lead.
func (s *leadService) ConvertLead(ctx context.Context, agencyID string, leadID string, req dto.ConvertLeadRequest, requestingUserID string) (*dto.ConvertLeadResult, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	lead, err := s.findAgencyLead(ctx, agencyID, leadID)
	if err != nil {
		return nil, err
	}
	if !lead.Status.CanTransitionTo(domain.LeadConverted) {
		return nil, fmt.Errorf("only qualified leads can be converted, lead is %s: %w", lead.Status, apperrors.ErrValidation)
	}
	if req.CreateProject && req.ProjectName == "" {
		return nil, fmt.Errorf("projectName is required when createProject is set: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	client := domain.Client{
		ClientID:    uuid.NewString(),
		AgencyID:    agencyID,
		Name:        lead.Name,
		ContactName: lead.ContactName,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Status:      domain.ClientActive,
		Notes:       lead.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	var project *domain.Project
	if req.CreateProject {
		project = &domain.Project{
			ProjectID: uuid.NewString(),
			AgencyID:  agencyID,
			ClientID:  client.ClientID,
			Name:      req.ProjectName,
			Status:    domain.ProjectPlanned,
			Budget:    decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
	}

	converted := *lead
	converted.Status = domain.LeadConverted
	converted.ConvertedClientID = &client.ClientID
	converted.Touch(requestingUserID, now)

	if err := s.leadRepo.ConvertLead(ctx, converted, client, project); err != nil {
		s.LogError(ctx, err, "Failed to convert lead", slog.String("lead_id", leadID))
		return nil, err
	}

	s.LogInfo(ctx, "Lead converted",
		slog.String("lead_id", leadID),
		slog.String("client_id", client.ClientID))
	return &dto.ConvertLeadResult{
		Lead:    converted,
		Client:  client,
		Project: project,
	}, nil
}
