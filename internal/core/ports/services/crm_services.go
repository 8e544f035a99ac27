package services

import (
	"context"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/agencydesk/agency_desk_app/internal/dto"
)

// ClientSvcFacade exposes client management operations.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, agencyID string, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, agencyID string, clientID string, requestingUserID string) (*domain.Client, error)
	ListClients(ctx context.Context, agencyID string, requestingUserID string, limit int, offset int) ([]domain.Client, error)
	UpdateClient(ctx context.Context, agencyID string, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error)
	DeleteClient(ctx context.Context, agencyID string, clientID string, requestingUserID string) error
}

// LeadSvcFacade exposes lead management and conversion.
type LeadSvcFacade interface {
	CreateLead(ctx context.Context, agencyID string, req dto.CreateLeadRequest, creatorUserID string) (*domain.Lead, error)
	GetLeadByID(ctx context.Context, agencyID string, leadID string, requestingUserID string) (*domain.Lead, error)
	ListLeads(ctx context.Context, agencyID string, requestingUserID string, params dto.ListLeadsParams) ([]domain.Lead, error)
	UpdateLead(ctx context.Context, agencyID string, leadID string, req dto.UpdateLeadRequest, requestingUserID string) (*domain.Lead, error)
	UpdateLeadStatus(ctx context.Context, agencyID string, leadID string, status domain.LeadStatus, requestingUserID string) (*domain.Lead, error)
	// ConvertLead atomically creates the client (and optionally a project)
	// and marks the lead CONVERTED.
	ConvertLead(ctx context.Context, agencyID string, leadID string, req dto.ConvertLeadRequest, requestingUserID string) (*dto.ConvertLeadResult, error)
}
