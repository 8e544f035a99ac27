package services

import (
	"context"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/agencydesk/agency_desk_app/internal/dto"
)

// AgencyAuthorizerSvc is the narrow authorization interface other services
// depend on so they do not need the full agency facade.
type AgencyAuthorizerSvc interface {
	// AuthorizeUserAction returns apperrors.ErrNotFound when the user is not a
	// member (hiding the agency's existence) and apperrors.ErrForbidden when
	// the membership role is below requiredRole.
	AuthorizeUserAction(ctx context.Context, userID string, agencyID string, requiredRole domain.AgencyRole) error
}

// AgencySvcFacade exposes agency and membership management.
type AgencySvcFacade interface {
	AgencyAuthorizerSvc

	CreateAgency(ctx context.Context, req dto.CreateAgencyRequest, creatorUserID string) (*domain.Agency, error)
	FindAgencyByID(ctx context.Context, agencyID string, requestingUserID string) (*domain.Agency, error)
	ListUserAgencies(ctx context.Context, userID string) ([]domain.Agency, error)
	UpdateAgency(ctx context.Context, agencyID string, req dto.UpdateAgencyRequest, requestingUserID string) (*domain.Agency, error)
	DeactivateAgency(ctx context.Context, agencyID string, requestingUserID string) error

	AddUserToAgency(ctx context.Context, addingUserID string, targetUserID string, agencyID string, role domain.AgencyRole) error
	UpdateMemberRole(ctx context.Context, actingUserID string, targetUserID string, agencyID string, role domain.AgencyRole) error
	RemoveMember(ctx context.Context, actingUserID string, targetUserID string, agencyID string) error
	ListMembers(ctx context.Context, agencyID string, requestingUserID string) ([]domain.UserAgency, error)
}
