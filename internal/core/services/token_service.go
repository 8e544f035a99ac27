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
	"github.com/agencydesk/agency_desk_app/internal/platform/config"
	"github.com/agencydesk/agency_desk_app/internal/utils"
)

// tokenService implements the TokenSvcFacade interface
type tokenService struct {
	BaseService
	userRepo portsrepo.UserRepository
	cfg      *config.Config
}

// NewTokenService creates a new token service with the provided dependencies
func NewTokenService(userRepo portsrepo.UserRepository, cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken returns a raw opaque token. Callers must pass it to
// StoreRefreshToken; only the SHA-256 hash of the token is ever persisted.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	expiresAt := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	return raw, expiresAt, nil
}

func (s *tokenService) StoreRefreshToken(ctx context.Context, userID string, rawToken string, expiresAt time.Time) error {
	hash := utils.HashRefreshToken(rawToken)
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, hash, expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

// ValidateRefreshToken checks the presented raw token against the stored hash
// and expiry, returning the user it belongs to.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID string, rawToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("refresh token does not match any user: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if user.RefreshTokenHash == "" {
		return nil, fmt.Errorf("no refresh token on record: %w", apperrors.ErrUnauthorized)
	}
	if !utils.CompareRefreshTokenHash(rawToken, user.RefreshTokenHash) {
		// A mismatch may mean token theft; revoke the stored token.
		if clearErr := s.userRepo.ClearRefreshToken(ctx, userID); clearErr != nil {
			s.LogError(ctx, clearErr, "Failed to revoke refresh token after mismatch", slog.String("user_id", userID))
		}
		return nil, fmt.Errorf("refresh token mismatch: %w", apperrors.ErrUnauthorized)
	}
	if user.RefreshTokenExpiryTime == nil || time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, fmt.Errorf("refresh token expired: %w", apperrors.ErrRefreshTokenExpired)
	}

	return user, nil
}

func (s *tokenService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

func (s *tokenService) GenerateTwoFactorPendingToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := utils.GenerateTwoFactorPendingJWT(user.UserID, s.cfg.JWTSecret, s.cfg.TwoFactorPendingDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate 2FA pending token", slog.String("user_id", user.UserID))
		return "", fmt.Errorf("failed to generate 2FA pending token: %w", err)
	}
	return token, nil
}

func (s *tokenService) ValidateTwoFactorPendingToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseTwoFactorPendingJWT(token, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("invalid 2FA pending token: %w", apperrors.ErrUnauthorized)
	}
	return claims.Subject, nil
}
