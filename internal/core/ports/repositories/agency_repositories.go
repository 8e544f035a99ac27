package repositories

import (
	"context"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// AgencyRepository persists agencies and user memberships.
type AgencyRepository interface {
	SaveAgency(ctx context.Context, agency domain.Agency) error
	FindAgencyByID(ctx context.Context, agencyID string) (*domain.Agency, error)
	ListAgenciesByUserID(ctx context.Context, userID string) ([]domain.Agency, error)
	UpdateAgency(ctx context.Context, agency domain.Agency) error
	DeactivateAgency(ctx context.Context, agencyID string, userID string, now time.Time) error

	AddUserToAgency(ctx context.Context, membership domain.UserAgency) error
	FindUserAgencyRole(ctx context.Context, userID string, agencyID string) (*domain.UserAgency, error)
	UpdateUserAgencyRole(ctx context.Context, userID string, agencyID string, role domain.AgencyRole) error
	ListAgencyMembers(ctx context.Context, agencyID string) ([]domain.UserAgency, error)
}
