package domain

import "time"

// User represents an authenticated person in the application.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`

	// GoogleID is set when the account was created (or linked) via Google sign-in.
	GoogleID *string `json:"-"`

	// TOTP two-factor authentication. The secret is stored as soon as the user
	// enrolls; Enabled flips only after the first successful code verification.
	TOTPSecret  *string `json:"-"`
	TOTPEnabled bool    `json:"totpEnabled"`

	// Refresh token state. Only a SHA-256 fingerprint of the token is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete marker
}

// GoogleUserInfo is the subset of the Google userinfo payload we consume.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
