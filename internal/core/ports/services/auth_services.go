package services

import (
	"context"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/agencydesk/agency_desk_app/internal/dto"
)

// TokenSvcFacade issues and validates the application's tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (token string, expiresAt time.Time, err error)
	// GenerateRefreshToken returns the raw token; only its hash is persisted.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (token string, expiresAt time.Time, err error)
	StoreRefreshToken(ctx context.Context, userID string, rawToken string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, userID string, rawToken string) (*domain.User, error)
	ClearRefreshToken(ctx context.Context, userID string) error

	// Two-factor pending tokens bridge the gap between a successful password
	// check and TOTP code verification.
	GenerateTwoFactorPendingToken(ctx context.Context, user *domain.User) (string, error)
	ValidateTwoFactorPendingToken(ctx context.Context, token string) (userID string, err error)
}

// MFASvcFacade manages TOTP two-factor authentication.
type MFASvcFacade interface {
	// EnrollTOTP generates and stores a secret; 2FA stays off until activated.
	EnrollTOTP(ctx context.Context, userID string) (*dto.MFAEnrollResponse, error)
	// ActivateTOTP verifies a code against the enrolled secret and enables 2FA.
	ActivateTOTP(ctx context.Context, userID string, code string) error
	DisableTOTP(ctx context.Context, userID string, code string) error
	// VerifyCode checks a code for an already-enabled user (login flow).
	VerifyCode(ctx context.Context, userID string, code string) error
}

// GoogleOAuthSvcFacade validates Google sign-in credentials. Two entry
// points are supported: a client-obtained ID token posted directly, and the
// server-side redirect flow (login URL, then code exchange on the callback).
type GoogleOAuthSvcFacade interface {
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error)
	GenerateStateString(ctx context.Context) (string, error)
	GetGoogleLoginURL(ctx context.Context, state string) string
	ExchangeCodeForUserInfo(ctx context.Context, code string) (*domain.GoogleUserInfo, error)
}
