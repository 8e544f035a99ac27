package repositories

import (
	"context"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// UserRepository persists users and their authentication state.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error

	// Refresh token state.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error

	// TOTP two-factor state.
	UpdateTOTPSecret(ctx context.Context, userID string, secret string) error
	SetTOTPEnabled(ctx context.Context, userID string, enabled bool) error
}
