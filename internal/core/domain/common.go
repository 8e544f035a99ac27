package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// NewAuditFields returns audit fields stamped with the actor and time.
func NewAuditFields(actorUserID string, at time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     at,
		CreatedBy:     actorUserID,
		LastUpdatedAt: at,
		LastUpdatedBy: actorUserID,
	}
}

// Touch updates the last-updated audit fields in place.
func (a *AuditFields) Touch(actorUserID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = actorUserID
}
