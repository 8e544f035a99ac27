package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// googleOAuthService implements the GoogleOAuthSvcFacade interface
type googleOAuthService struct {
	BaseService
	clientID     string
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new Google sign-in validator. The oauth2
// config backs the server-side redirect flow; the ID token path only needs
// the client ID.
func NewGoogleOAuthService(clientID string, clientSecret string, redirectURL string) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		clientID: clientID,
		oauth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

// ValidateGoogleIDToken validates an ID token received from Google and
// returns the verified identity it carries.
func (s *googleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleUserInfo, error) {
	if s.clientID == "" {
		// This should ideally be caught at startup, but as a safeguard:
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.clientID)
	if err != nil {
		// The error from idtoken.Validate can be quite descriptive, e.g., "idtoken: token expired".
		return nil, fmt.Errorf("google ID token validation failed: %v: %w", err, apperrors.ErrUnauthorized)
	}

	info := &domain.GoogleUserInfo{ID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		info.Picture = picture
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google ID token has no email claim: %w", apperrors.ErrUnauthorized)
	}

	return info, nil
}

// GenerateStateString creates the CSRF state token for the redirect flow.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForUserInfo exchanges the authorization code delivered to the
// callback for a token and validates the ID token embedded in it.
func (s *googleOAuthService) ExchangeCodeForUserInfo(ctx context.Context, code string) (*domain.GoogleUserInfo, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %v: %w", err, apperrors.ErrUnauthorized)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("oauth token carries no id_token: %w", apperrors.ErrUnauthorized)
	}
	return s.ValidateGoogleIDToken(ctx, rawIDToken)
}
