package domain

import "time"

// ClientStatus enumerates the lifecycle states of a client record.
type ClientStatus string

const (
	ClientActive   ClientStatus = "ACTIVE"
	ClientArchived ClientStatus = "ARCHIVED"
)

// Client is a customer organization of an agency.
type Client struct {
	ClientID    string       `json:"clientID"` // Primary Key (UUID)
	AgencyID    string       `json:"agencyID"`
	Name        string       `json:"name"`
	ContactName string       `json:"contactName"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Address     string       `json:"address"`
	Status      ClientStatus `json:"status"`
	Notes       string       `json:"notes"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
