package models

import "time"

// Agency mirrors the agencies table.
type Agency struct {
	AgencyID     string `db:"agency_id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	CurrencyCode string `db:"currency_code"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}

// UserAgency mirrors the user_agencies membership table. UserName is joined
// from users on reads.
type UserAgency struct {
	UserID   string    `db:"user_id"`
	UserName string    `db:"user_name"`
	AgencyID string    `db:"agency_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}
