package domain_test

import (
	"testing"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestLeadStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.LeadStatus
		to   domain.LeadStatus
		want bool
	}{
		{"new to contacted", domain.LeadNew, domain.LeadContacted, true},
		{"new to qualified", domain.LeadNew, domain.LeadQualified, true},
		{"new to lost", domain.LeadNew, domain.LeadLost, true},
		{"new cannot convert directly", domain.LeadNew, domain.LeadConverted, false},
		{"contacted to qualified", domain.LeadContacted, domain.LeadQualified, true},
		{"contacted cannot go back to new", domain.LeadContacted, domain.LeadNew, false},
		{"qualified to converted", domain.LeadQualified, domain.LeadConverted, true},
		{"qualified to lost", domain.LeadQualified, domain.LeadLost, true},
		{"converted is terminal", domain.LeadConverted, domain.LeadLost, false},
		{"lost is terminal", domain.LeadLost, domain.LeadContacted, false},
		{"no self transition", domain.LeadContacted, domain.LeadContacted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
