package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus enumerates the lifecycle states of a project.
type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "PLANNED"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

// Project is a body of work performed for a client.
type Project struct {
	ProjectID   string          `json:"projectID"` // Primary Key (UUID)
	AgencyID    string          `json:"agencyID"`
	ClientID    string          `json:"clientID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      ProjectStatus   `json:"status"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
	AuditFields
}
