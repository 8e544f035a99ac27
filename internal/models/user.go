package models

import (
	"database/sql"
	"time"
)

// User mirrors the users table.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`

	GoogleID sql.NullString `db:"google_id"`

	TOTPSecret  sql.NullString `db:"totp_secret"`
	TOTPEnabled bool           `db:"totp_enabled"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`

	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
