package models

import "database/sql"

// Notification mirrors the notifications table.
type Notification struct {
	NotificationID string       `db:"notification_id"`
	AgencyID       string       `db:"agency_id"`
	UserID         string       `db:"user_id"`
	Kind           string       `db:"kind"`
	Title          string       `db:"title"`
	Body           string       `db:"body"`
	RefID          string       `db:"ref_id"`
	ReadAt         sql.NullTime `db:"read_at"`
	AuditFields
}
