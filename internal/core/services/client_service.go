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

// clientService implements the ClientSvcFacade interface
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepository
}

// NewClientService creates a new client service with the provided dependencies
func NewClientService(clientRepo portsrepo.ClientRepository, authorizer portssvc.AgencyAuthorizerSvc) portssvc.ClientSvcFacade {
	return &clientService{
		BaseService: BaseService{AgencyAuthorizer: authorizer},
		clientRepo:  clientRepo,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, agencyID string, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	now := time.Now()
	client := domain.Client{
		ClientID:    uuid.NewString(),
		AgencyID:    agencyID,
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Status:      domain.ClientActive,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("agency_id", agencyID))
		return nil, err
	}
	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

// findAgencyClient fetches a client and verifies it belongs to the agency in
// the URL. A client from another agency is reported as not found.
func (s *clientService) findAgencyClient(ctx context.Context, agencyID string, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.AgencyID != agencyID {
		return nil, fmt.Errorf("client %s not found in agency %s: %w", clientID, agencyID, apperrors.ErrNotFound)
	}
	return client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, agencyID string, clientID string, requestingUserID string) (*domain.Client, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findAgencyClient(ctx, agencyID, clientID)
}

func (s *clientService) ListClients(ctx context.Context, agencyID string, requestingUserID string, limit int, offset int) ([]domain.Client, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.ListClientsByAgency(ctx, agencyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients", slog.String("agency_id", agencyID))
		return nil, err
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, agencyID string, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	client, err := s.findAgencyClient(ctx, agencyID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.ContactName != nil {
		client.ContactName = *req.ContactName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	client.Touch(requestingUserID, time.Now())

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, agencyID string, clientID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.findAgencyClient(ctx, agencyID, clientID); err != nil {
		return err
	}

	if err := s.clientRepo.MarkClientDeleted(ctx, clientID, time.Now(), requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		}
		return err
	}
	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	return nil
}
