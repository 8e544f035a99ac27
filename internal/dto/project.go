package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines data for creating a project.
type CreateProjectRequest struct {
	ClientID    string          `json:"clientID" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	StartDate   *time.Time      `json:"startDate"`
	EndDate     *time.Time      `json:"endDate"`
	Budget      decimal.Decimal `json:"budget"`
}

// UpdateProjectRequest defines data for updating a project.
type UpdateProjectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *domain.ProjectStatus `json:"status" binding:"omitempty,oneof=PLANNED ACTIVE ON_HOLD COMPLETED CANCELLED"`
	StartDate   *time.Time            `json:"startDate"`
	EndDate     *time.Time            `json:"endDate"`
	Budget      *decimal.Decimal      `json:"budget"`
}

// ProjectResponse defines data returned for a project.
type ProjectResponse struct {
	ProjectID   string               `json:"projectID"`
	AgencyID    string               `json:"agencyID"`
	ClientID    string               `json:"clientID"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	StartDate   *time.Time           `json:"startDate,omitempty"`
	EndDate     *time.Time           `json:"endDate,omitempty"`
	Budget      decimal.Decimal      `json:"budget"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ToProjectResponse converts domain.Project to DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ProjectID,
		AgencyID:    p.AgencyID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		CreatedAt:   p.CreatedAt,
	}
}

// ListProjectsResponse wraps a list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToListProjectsResponse converts a slice of domain.Project to DTO.
func ToListProjectsResponse(ps []domain.Project) ListProjectsResponse {
	list := make([]ProjectResponse, len(ps))
	for i, p := range ps {
		list[i] = ToProjectResponse(&p)
	}
	return ListProjectsResponse{Projects: list}
}
