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

// agencyService implements the AgencySvcFacade interface
type agencyService struct {
	BaseService
	agencyRepo portsrepo.AgencyRepository
	userRepo   portsrepo.UserRepository
}

// NewAgencyService creates a new agency service with the provided dependencies
func NewAgencyService(agencyRepo portsrepo.AgencyRepository, userRepo portsrepo.UserRepository) portssvc.AgencySvcFacade {
	return &agencyService{
		agencyRepo: agencyRepo,
		userRepo:   userRepo,
	}
}

var _ portssvc.AgencySvcFacade = (*agencyService)(nil)

// AuthorizeUserAction verifies the user holds at least requiredRole in the
// agency. Non-members get ErrNotFound so the agency's existence is not
// revealed to outsiders.
func (s *agencyService) AuthorizeUserAction(ctx context.Context, userID string, agencyID string, requiredRole domain.AgencyRole) error {
	membership, err := s.agencyRepo.FindUserAgencyRole(ctx, userID, agencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("user %s has no membership in agency %s: %w", userID, agencyID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to look up agency membership",
			slog.String("user_id", userID),
			slog.String("agency_id", agencyID))
		return err
	}
	if membership.Role == domain.RoleRemoved {
		return fmt.Errorf("user %s was removed from agency %s: %w", userID, agencyID, apperrors.ErrNotFound)
	}
	if !membership.Role.HasAtLeast(requiredRole) {
		return fmt.Errorf("user %s role %s is below required role %s: %w", userID, membership.Role, requiredRole, apperrors.ErrForbidden)
	}
	return nil
}

// CreateAgency creates a new agency and makes the creator its owner.
func (s *agencyService) CreateAgency(ctx context.Context, req dto.CreateAgencyRequest, creatorUserID string) (*domain.Agency, error) {
	now := time.Now()
	agency := domain.Agency{
		AgencyID:     uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.agencyRepo.SaveAgency(ctx, agency); err != nil {
		s.LogError(ctx, err, "Failed to save agency", slog.String("agency_id", agency.AgencyID))
		return nil, err
	}

	membership := domain.UserAgency{
		UserID:   creatorUserID,
		AgencyID: agency.AgencyID,
		Role:     domain.RoleOwner,
		JoinedAt: now,
	}
	if err := s.agencyRepo.AddUserToAgency(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as owner of new agency",
			slog.String("agency_id", agency.AgencyID),
			slog.String("user_id", creatorUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Agency created", slog.String("agency_id", agency.AgencyID))
	return &agency, nil
}

func (s *agencyService) FindAgencyByID(ctx context.Context, agencyID string, requestingUserID string) (*domain.Agency, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	agency, err := s.agencyRepo.FindAgencyByID(ctx, agencyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find agency by ID", slog.String("agency_id", agencyID))
		}
		return nil, err
	}
	return agency, nil
}

func (s *agencyService) ListUserAgencies(ctx context.Context, userID string) ([]domain.Agency, error) {
	agencies, err := s.agencyRepo.ListAgenciesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list agencies for user", slog.String("user_id", userID))
		return nil, err
	}
	if agencies == nil {
		return []domain.Agency{}, nil
	}
	return agencies, nil
}

func (s *agencyService) UpdateAgency(ctx context.Context, agencyID string, req dto.UpdateAgencyRequest, requestingUserID string) (*domain.Agency, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, agencyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	agency, err := s.agencyRepo.FindAgencyByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		agency.Name = *req.Name
	}
	if req.Description != nil {
		agency.Description = *req.Description
	}
	agency.Touch(requestingUserID, time.Now())

	if err := s.agencyRepo.UpdateAgency(ctx, *agency); err != nil {
		s.LogError(ctx, err, "Failed to update agency", slog.String("agency_id", agencyID))
		return nil, err
	}
	return agency, nil
}

// DeactivateAgency disables an agency. Only the owner may do this.
func (s *agencyService) DeactivateAgency(ctx context.Context, agencyID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, agencyID, domain.RoleOwner); err != nil {
		return err
	}
	if err := s.agencyRepo.DeactivateAgency(ctx, agencyID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate agency", slog.String("agency_id", agencyID))
		return err
	}
	s.LogInfo(ctx, "Agency deactivated", slog.String("agency_id", agencyID))
	return nil
}

// AddUserToAgency adds targetUserID as a member. The acting user needs admin
// rights, and the granted role must be an assignable one (never OWNER or
// REMOVED). Re-adding a previously removed member restores them with the new
// role.
func (s *agencyService) AddUserToAgency(ctx context.Context, addingUserID string, targetUserID string, agencyID string, role domain.AgencyRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, agencyID, domain.RoleAdmin); err != nil {
		return err
	}
	if !role.IsAssignable() {
		return fmt.Errorf("role %s cannot be granted to members: %w", role, apperrors.ErrValidation)
	}

	// Make sure the target user actually exists before recording membership.
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return fmt.Errorf("target user %s: %w", targetUserID, err)
	}

	membership := domain.UserAgency{
		UserID:   targetUserID,
		AgencyID: agencyID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.agencyRepo.AddUserToAgency(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to agency",
			slog.String("agency_id", agencyID),
			slog.String("user_id", targetUserID))
		return err
	}
	s.LogInfo(ctx, "User added to agency",
		slog.String("agency_id", agencyID),
		slog.String("user_id", targetUserID),
		slog.String("role", string(role)))
	return nil
}

// UpdateMemberRole changes an existing member's role. Owners cannot be
// demoted this way and the owner role cannot be granted.
func (s *agencyService) UpdateMemberRole(ctx context.Context, actingUserID string, targetUserID string, agencyID string, role domain.AgencyRole) error {
	if err := s.AuthorizeUserAction(ctx, actingUserID, agencyID, domain.RoleAdmin); err != nil {
		return err
	}
	if !role.IsAssignable() {
		return fmt.Errorf("role %s cannot be granted to members: %w", role, apperrors.ErrValidation)
	}

	membership, err := s.agencyRepo.FindUserAgencyRole(ctx, targetUserID, agencyID)
	if err != nil {
		return fmt.Errorf("target membership: %w", err)
	}
	if membership.Role == domain.RoleOwner {
		return fmt.Errorf("the agency owner's role cannot be changed: %w", apperrors.ErrValidation)
	}
	if membership.Role == domain.RoleRemoved {
		return fmt.Errorf("user %s is not an active member: %w", targetUserID, apperrors.ErrNotFound)
	}

	if err := s.agencyRepo.UpdateUserAgencyRole(ctx, targetUserID, agencyID, role); err != nil {
		s.LogError(ctx, err, "Failed to update member role",
			slog.String("agency_id", agencyID),
			slog.String("user_id", targetUserID))
		return err
	}
	return nil
}

// RemoveMember marks a membership as removed. The owner cannot be removed,
// and members cannot remove themselves (owners deactivate the agency
// instead, others just stop using it).
func (s *agencyService) RemoveMember(ctx context.Context, actingUserID string, targetUserID string, agencyID string) error {
	if err := s.AuthorizeUserAction(ctx, actingUserID, agencyID, domain.RoleAdmin); err != nil {
		return err
	}
	if actingUserID == targetUserID {
		return fmt.Errorf("members cannot remove themselves: %w", apperrors.ErrValidation)
	}

	membership, err := s.agencyRepo.FindUserAgencyRole(ctx, targetUserID, agencyID)
	if err != nil {
		return fmt.Errorf("target membership: %w", err)
	}
	if membership.Role == domain.RoleOwner {
		return fmt.Errorf("the agency owner cannot be removed: %w", apperrors.ErrValidation)
	}
	if membership.Role == domain.RoleRemoved {
		return fmt.Errorf("user %s is not an active member: %w", targetUserID, apperrors.ErrNotFound)
	}

	if err := s.agencyRepo.UpdateUserAgencyRole(ctx, targetUserID, agencyID, domain.RoleRemoved); err != nil {
		s.LogError(ctx, err, "Failed to remove member",
			slog.String("agency_id", agencyID),
			slog.String("user_id", targetUserID))
		return err
	}
	s.LogInfo(ctx, "Member removed from agency",
		slog.String("agency_id", agencyID),
		slog.String("user_id", targetUserID))
	return nil
}

func (s *agencyService) ListMembers(ctx context.Context, agencyID string, requestingUserID string) ([]domain.UserAgency, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	members, err := s.agencyRepo.ListAgencyMembers(ctx, agencyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list agency members", slog.String("agency_id", agencyID))
		return nil, err
	}
	if members == nil {
		return []domain.UserAgency{}, nil
	}
	return members, nil
}
