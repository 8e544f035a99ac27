package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// --- Agency DTOs ---

// CreateAgencyRequest defines data for creating a new agency.
type CreateAgencyRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode" binding:"required,iso4217"`
}

// UpdateAgencyRequest defines data for updating an agency.
type UpdateAgencyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AgencyResponse defines data returned for an agency.
type AgencyResponse struct {
	AgencyID      string    `json:"agencyID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CurrencyCode  string    `json:"currencyCode"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToAgencyResponse converts domain.Agency to DTO.
func ToAgencyResponse(a *domain.Agency) AgencyResponse {
	return AgencyResponse{
		AgencyID:      a.AgencyID,
		Name:          a.Name,
		Description:   a.Description,
		CurrencyCode:  a.CurrencyCode,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// ListAgenciesResponse wraps a list of agencies.
type ListAgenciesResponse struct {
	Agencies []AgencyResponse `json:"agencies"`
}

// ToListAgenciesResponse converts a slice of domain.Agency to DTO.
func ToListAgenciesResponse(as []domain.Agency) ListAgenciesResponse {
	list := make([]AgencyResponse, len(as))
	for i, a := range as {
		list[i] = ToAgencyResponse(&a)
	}
	return ListAgenciesResponse{Agencies: list}
}

// --- Membership DTOs ---

// AddMemberRequest defines data for adding a user to an agency.
type AddMemberRequest struct {
	UserID string            `json:"userID" binding:"required"`
	Role   domain.AgencyRole `json:"role" binding:"required,agencyrole"`
}

// UpdateMemberRoleRequest changes an existing member's role.
type UpdateMemberRoleRequest struct {
	Role domain.AgencyRole `json:"role" binding:"required,agencyrole"`
}

// MemberResponse defines data returned about an agency membership.
type MemberResponse struct {
	UserID   string            `json:"userID"`
	UserName string            `json:"userName"`
	AgencyID string            `json:"agencyID"`
	Role     domain.AgencyRole `json:"role"`
	JoinedAt time.Time         `json:"joinedAt"`
}

// ToMemberResponse converts domain.UserAgency to DTO.
func ToMemberResponse(m *domain.UserAgency) MemberResponse {
	return MemberResponse{
		UserID:   m.UserID,
		UserName: m.UserName,
		AgencyID: m.AgencyID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

// ListMembersResponse wraps a list of members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// ToListMembersResponse converts a slice of domain.UserAgency to DTO.
func ToListMembersResponse(ms []domain.UserAgency) ListMembersResponse {
	list := make([]MemberResponse, len(ms))
	for i, m := range ms {
		list[i] = ToMemberResponse(&m)
	}
	return ListMembersResponse{Members: list}
}
