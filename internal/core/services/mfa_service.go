package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// mfaService implements the MFASvcFacade interface using TOTP.
type mfaService struct {
	BaseService
	userRepo portsrepo.UserRepository
	issuer   string
}

// NewMFAService creates a new MFA service with the provided dependencies
func NewMFAService(userRepo portsrepo.UserRepository, issuer string) portssvc.MFASvcFacade {
	return &mfaService{userRepo: userRepo, issuer: issuer}
}

var _ portssvc.MFASvcFacade = (*mfaService)(nil)

// EnrollTOTP generates a fresh secret for the user and stores it. Two-factor
// stays disabled until ActivateTOTP confirms the user can produce codes.
func (s *mfaService) EnrollTOTP(ctx context.Context, userID string) (*dto.MFAEnrollResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabled {
		return nil, fmt.Errorf("two-factor authentication is already enabled: %w", apperrors.ErrValidation)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate TOTP key", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.userRepo.UpdateTOTPSecret(ctx, userID, key.Secret()); err != nil {
		s.LogError(ctx, err, "Failed to store TOTP secret", slog.String("user_id", userID))
		return nil, err
	}

	return &dto.MFAEnrollResponse{
		Secret:     key.Secret(),
		OtpauthURL: key.URL(),
		Issuer:     s.issuer,
		Account:    user.Username,
	}, nil
}

// ActivateTOTP enables two-factor after the user proves possession of the
// enrolled secret by submitting a valid code.
func (s *mfaService) ActivateTOTP(ctx context.Context, userID string, code string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPEnabled {
		return fmt.Errorf("two-factor authentication is already enabled: %w", apperrors.ErrValidation)
	}
	if user.TOTPSecret == nil || *user.TOTPSecret == "" {
		return fmt.Errorf("no TOTP enrollment in progress: %w", apperrors.ErrValidation)
	}
	if !totp.Validate(code, *user.TOTPSecret) {
		return fmt.Errorf("invalid TOTP code: %w", apperrors.ErrUnauthorized)
	}

	if err := s.userRepo.SetTOTPEnabled(ctx, userID, true); err != nil {
		s.LogError(ctx, err, "Failed to enable TOTP", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Two-factor authentication enabled", slog.String("user_id", userID))
	return nil
}

// DisableTOTP turns two-factor off. A valid current code is required so a
// hijacked session cannot silently weaken the account.
func (s *mfaService) DisableTOTP(ctx context.Context, userID string, code string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled {
		return fmt.Errorf("two-factor authentication is not enabled: %w", apperrors.ErrValidation)
	}
	if user.TOTPSecret == nil || !totp.Validate(code, *user.TOTPSecret) {
		return fmt.Errorf("invalid TOTP code: %w", apperrors.ErrUnauthorized)
	}

	if err := s.userRepo.SetTOTPEnabled(ctx, userID, false); err != nil {
		s.LogError(ctx, err, "Failed to disable TOTP", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Two-factor authentication disabled", slog.String("user_id", userID))
	return nil
}

// VerifyCode checks a login-flow code for a user with two-factor enabled.
func (s *mfaService) VerifyCode(ctx context.Context, userID string, code string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled || user.TOTPSecret == nil {
		return fmt.Errorf("two-factor authentication is not enabled: %w", apperrors.ErrValidation)
	}
	if !totp.Validate(code, *user.TOTPSecret) {
		return fmt.Errorf("invalid TOTP code: %w", apperrors.ErrUnauthorized)
	}
	return nil
}
