package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project mirrors the projects table.
type Project struct {
	ProjectID   string          `db:"project_id"`
	AgencyID    string          `db:"agency_id"`
	ClientID    string          `db:"client_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Status      string          `db:"status"`
	StartDate   *time.Time      `db:"start_date"`
	EndDate     *time.Time      `db:"end_date"`
	Budget      decimal.Decimal `db:"budget"`
	AuditFields
}
