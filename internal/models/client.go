package models

import "time"

// Client mirrors the clients table.
type Client struct {
	ClientID    string `db:"client_id"`
	AgencyID    string `db:"agency_id"`
	Name        string `db:"name"`
	ContactName string `db:"contact_name"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	Address     string `db:"address"`
	Status      string `db:"status"`
	Notes       string `db:"notes"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
