package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Lead mirrors the leads table.
type Lead struct {
	LeadID            string          `db:"lead_id"`
	AgencyID          string          `db:"agency_id"`
	Name              string          `db:"name"`
	ContactName       string          `db:"contact_name"`
	Email             string          `db:"email"`
	Phone             string          `db:"phone"`
	Source            string          `db:"source"`
	EstimatedValue    decimal.Decimal `db:"estimated_value"`
	Status            string          `db:"status"`
	ConvertedClientID sql.NullString  `db:"converted_client_id"`
	Notes             string          `db:"notes"`
	AuditFields
}
