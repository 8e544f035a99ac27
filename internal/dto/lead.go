package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLeadRequest defines data for creating a lead.
type CreateLeadRequest struct {
	Name           string          `json:"name" binding:"required"`
	ContactName    string          `json:"contactName"`
	Email          string          `json:"email" binding:"omitempty,email"`
	Phone          string          `json:"phone"`
	Source         string          `json:"source"`
	EstimatedValue decimal.Decimal `json:"estimatedValue"`
	Notes          string          `json:"notes"`
}

// UpdateLeadRequest defines data for updating a lead.
type UpdateLeadRequest struct {
	Name           *string          `json:"name"`
	ContactName    *string          `json:"contactName"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Phone          *string          `json:"phone"`
	Source         *string          `json:"source"`
	EstimatedValue *decimal.Decimal `json:"estimatedValue"`
	Notes          *string          `json:"notes"`
}

// UpdateLeadStatusRequest moves a lead along the pipeline.
type UpdateLeadStatusRequest struct {
	Status domain.LeadStatus `json:"status" binding:"required,oneof=NEW CONTACTED QUALIFIED LOST"`
}

// ConvertLeadRequest controls the lead-to-client conversion.
type ConvertLeadRequest struct {
	// CreateProject additionally opens an initial project for the new client.
	CreateProject bool   `json:"createProject"`
	ProjectName   string `json:"projectName"`
}

// ListLeadsParams defines query parameters for listing leads.
type ListLeadsParams struct {
	Status *domain.LeadStatus `form:"status" binding:"omitempty,oneof=NEW CONTACTED QUALIFIED CONVERTED LOST"`
	Limit  int                `form:"limit,default=20"`
	Offset int                `form:"offset,default=0"`
}

// LeadResponse defines data returned for a lead.
type LeadResponse struct {
	LeadID            string            `json:"leadID"`
	AgencyID          string            `json:"agencyID"`
	Name              string            `json:"name"`
	ContactName       string            `json:"contactName"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	Source            string            `json:"source"`
	EstimatedValue    decimal.Decimal   `json:"estimatedValue"`
	Status            domain.LeadStatus `json:"status"`
	ConvertedClientID *string           `json:"convertedClientID,omitempty"`
	Notes             string            `json:"notes"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// ToLeadResponse converts domain.Lead to DTO.
func ToLeadResponse(l *domain.Lead) LeadResponse {
	return LeadResponse{
		LeadID:            l.LeadID,
		AgencyID:          l.AgencyID,
		Name:              l.Name,
		ContactName:       l.ContactName,
		Email:             l.Email,
		Phone:             l.Phone,
		Source:            l.Source,
		EstimatedValue:    l.EstimatedValue,
		Status:            l.Status,
		ConvertedClientID: l.ConvertedClientID,
		Notes:             l.Notes,
		CreatedAt:         l.CreatedAt,
	}
}

// ListLeadsResponse wraps a list of leads.
type ListLeadsResponse struct {
	Leads []LeadResponse `json:"leads"`
}

// ToListLeadsResponse converts a slice of domain.Lead to DTO.
func ToListLeadsResponse(ls []domain.Lead) ListLeadsResponse {
	list := make([]LeadResponse, len(ls))
	for i, l := range ls {
		list[i] = ToLeadResponse(&l)
	}
	return ListLeadsResponse{Leads: list}
}

// ConvertLeadResult bundles everything produced by a conversion.
type ConvertLeadResult struct {
	Lead    domain.Lead
	Client  domain.Client
	Project *domain.Project
}

// ConvertLeadResponse is the API shape of a conversion result.
type ConvertLeadResponse struct {
	Lead    LeadResponse     `json:"lead"`
	Client  ClientResponse   `json:"client"`
	Project *ProjectResponse `json:"project,omitempty"`
}

// ToConvertLeadResponse converts a ConvertLeadResult to DTO.
func ToConvertLeadResponse(r *ConvertLeadResult) ConvertLeadResponse {
	resp := ConvertLeadResponse{
		Lead:   ToLeadResponse(&r.Lead),
		Client: ToClientResponse(&r.Client),
	}
	if r.Project != nil {
		p := ToProjectResponse(r.Project)
		resp.Project = &p
	}
	return resp
}
