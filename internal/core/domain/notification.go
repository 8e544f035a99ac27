package domain

import "time"

// NotificationKind classifies what event produced a notification.
type NotificationKind string

const (
	NotifyLeaveDecision         NotificationKind = "LEAVE_DECISION"
	NotifyReimbursementDecision NotificationKind = "REIMBURSEMENT_DECISION"
	NotifyPaymentReceived       NotificationKind = "PAYMENT_RECEIVED"
	NotifyJobAssigned           NotificationKind = "JOB_ASSIGNED"
	NotifyGeneric               NotificationKind = "GENERIC"
)

// Notification is a message addressed to one agency member.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	AgencyID       string           `json:"agencyID"`
	UserID         string           `json:"userID"` // Recipient
	Kind           NotificationKind `json:"kind"`
	Title          string           `json:"title"`
	Body           string           `json:"body"`
	RefID          string           `json:"refID,omitempty"` // ID of the entity the event concerns
	ReadAt         *time.Time       `json:"readAt,omitempty"`
	AuditFields
}

// IsRead reports whether the recipient has seen the notification.
func (n Notification) IsRead() bool {
	return n.ReadAt != nil
}
