package dto

import "time"

// --- Authentication DTOs ---

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful password verification. When the
// user has two-factor enabled, only Requires2FA and PendingToken are set and
// the client must call the verify endpoint to obtain tokens.
type LoginResponse struct {
	Requires2FA  bool       `json:"requires2FA"`
	PendingToken string     `json:"pendingToken,omitempty"`
	AccessToken  string     `json:"accessToken,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	User         *UserResponse `json:"user,omitempty"`
}

// Verify2FARequest completes a two-factor login.
type Verify2FARequest struct {
	PendingToken string `json:"pendingToken" binding:"required"`
	Code         string `json:"code" binding:"required,len=6,numeric"`
}

// RefreshResponse is returned by the token refresh endpoint.
type RefreshResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// GoogleSignInRequest carries a Google-issued ID token.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// --- TOTP two-factor DTOs ---

// MFAEnrollResponse returns the enrolled secret and its otpauth:// URL so the
// client can render a QR code.
type MFAEnrollResponse struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauthURL"`
	Issuer     string `json:"issuer"`
	Account    string `json:"account"`
}

// MFACodeRequest carries a TOTP code for activation, disabling or login.
type MFACodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}
