package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// CreateClientRequest defines data for creating a client.
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdateClientRequest defines data for updating a client.
type UpdateClientRequest struct {
	Name        *string              `json:"name"`
	ContactName *string              `json:"contactName"`
	Email       *string              `json:"email" binding:"omitempty,email"`
	Phone       *string              `json:"phone"`
	Address     *string              `json:"address"`
	Notes       *string              `json:"notes"`
	Status      *domain.ClientStatus `json:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
}

// ListParams is the common limit/offset query pair for list endpoints.
type ListParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ClientResponse defines data returned for a client.
type ClientResponse struct {
	ClientID    string              `json:"clientID"`
	AgencyID    string              `json:"agencyID"`
	Name        string              `json:"name"`
	ContactName string              `json:"contactName"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Address     string              `json:"address"`
	Status      domain.ClientStatus `json:"status"`
	Notes       string              `json:"notes"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
}

// ToClientResponse converts domain.Client to DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:    c.ClientID,
		AgencyID:    c.AgencyID,
		Name:        c.Name,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Status:      c.Status,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		CreatedBy:   c.CreatedBy,
	}
}

// ListClientsResponse wraps a list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToListClientsResponse converts a slice of domain.Client to DTO.
func ToListClientsResponse(cs []domain.Client) ListClientsResponse {
	list := make([]ClientResponse, len(cs))
	for i, c := range cs {
		list[i] = ToClientResponse(&c)
	}
	return ListClientsResponse{Clients: list}
}
