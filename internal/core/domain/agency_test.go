package domain_test

import (
	"testing"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAgencyRole_HasAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.AgencyRole
		required domain.AgencyRole
		want     bool
	}{
		{
			name:     "owner satisfies admin",
			role:     domain.RoleOwner,
			required: domain.RoleAdmin,
			want:     true,
		},
		{
			name:     "role satisfies itself",
			role:     domain.RoleManager,
			required: domain.RoleManager,
			want:     true,
		},
		{
			name:     "employee does not satisfy manager",
			role:     domain.RoleEmployee,
			required: domain.RoleManager,
			want:     false,
		},
		{
			name:     "readonly satisfies readonly",
			role:     domain.RoleReadOnly,
			required: domain.RoleReadOnly,
			want:     true,
		},
		{
			name:     "removed satisfies nothing",
			role:     domain.RoleRemoved,
			required: domain.RoleReadOnly,
			want:     false,
		},
		{
			name:     "unknown role satisfies nothing",
			role:     domain.AgencyRole("INTERN"),
			required: domain.RoleReadOnly,
			want:     false,
		},
		{
			name:     "unknown required role is never satisfied",
			role:     domain.RoleOwner,
			required: domain.AgencyRole("SUPERUSER"),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.HasAtLeast(tt.required))
		})
	}
}

func TestAgencyRole_IsAssignable(t *testing.T) {
	assert.True(t, domain.RoleAdmin.IsAssignable())
	assert.True(t, domain.RoleManager.IsAssignable())
	assert.True(t, domain.RoleEmployee.IsAssignable())
	assert.True(t, domain.RoleReadOnly.IsAssignable())

	assert.False(t, domain.RoleOwner.IsAssignable())
	assert.False(t, domain.RoleRemoved.IsAssignable())
	assert.False(t, domain.AgencyRole("INTERN").IsAssignable())
}
