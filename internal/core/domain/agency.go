package domain

import "time"

// Agency is the tenant organization scoping all records.
type Agency struct {
	AgencyID     string `json:"agencyID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode"` // ISO 4217, used for invoices and the ledger
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// AgencyRole defines the possible roles a user can have within an agency.
type AgencyRole string

const (
	RoleOwner    AgencyRole = "OWNER"
	RoleAdmin    AgencyRole = "ADMIN"
	RoleManager  AgencyRole = "MANAGER"
	RoleEmployee AgencyRole = "EMPLOYEE"
	RoleReadOnly AgencyRole = "READONLY"
	RoleRemoved  AgencyRole = "REMOVED" // For users who have been removed from the agency
)

// roleRank orders roles for the "role-or-higher" check. Higher is stronger.
var roleRank = map[AgencyRole]int{
	RoleReadOnly: 1,
	RoleEmployee: 2,
	RoleManager:  3,
	RoleAdmin:    4,
	RoleOwner:    5,
}

// HasAtLeast reports whether role meets or exceeds required.
// REMOVED (and any unknown role) never satisfies anything.
func (r AgencyRole) HasAtLeast(required AgencyRole) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= want
}

// IsAssignable reports whether the role may be granted to a member.
func (r AgencyRole) IsAssignable() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleReadOnly:
		return true
	}
	// OWNER is only ever set at agency creation; REMOVED via removal.
	return false
}

// UserAgency represents the membership of a User in an Agency.
type UserAgency struct {
	UserID   string     `json:"userID"`   // FK -> users.user_id
	UserName string     `json:"userName"` // Display name of the user
	AgencyID string     `json:"agencyID"` // FK -> agencies.agency_id
	Role     AgencyRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}
