package domain

import "github.com/shopspring/decimal"

// LeadStatus enumerates the sales pipeline states of a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "NEW"
	LeadContacted LeadStatus = "CONTACTED"
	LeadQualified LeadStatus = "QUALIFIED"
	LeadConverted LeadStatus = "CONVERTED"
	LeadLost      LeadStatus = "LOST"
)

// leadTransitions lists the allowed status moves in the pipeline.
var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadNew:       {LeadContacted, LeadQualified, LeadLost},
	LeadContacted: {LeadQualified, LeadLost},
	LeadQualified: {LeadConverted, LeadLost},
}

// CanTransitionTo reports whether a lead may move from its current status to next.
// CONVERTED and LOST are terminal.
func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	for _, allowed := range leadTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Lead is a prospective client in the sales pipeline.
type Lead struct {
	LeadID            string          `json:"leadID"` // Primary Key (UUID)
	AgencyID          string          `json:"agencyID"`
	Name              string          `json:"name"`
	ContactName       string          `json:"contactName"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Source            string          `json:"source"` // e.g. referral, website, cold call
	EstimatedValue    decimal.Decimal `json:"estimatedValue"`
	Status            LeadStatus      `json:"status"`
	ConvertedClientID *string         `json:"convertedClientID,omitempty"` // Set when the lead becomes a client
	Notes             string          `json:"notes"`
	AuditFields
}
