package dto

import (
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// ListNotificationsParams defines query parameters for listing notifications.
// NextToken is an opaque cursor from a previous response.
type ListNotificationsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// NotificationResponse defines data returned for a notification.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	AgencyID       string                  `json:"agencyID"`
	Kind           domain.NotificationKind `json:"kind"`
	Title          string                  `json:"title"`
	Body           string                  `json:"body"`
	RefID          string                  `json:"refID,omitempty"`
	ReadAt         *time.Time              `json:"readAt,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ToNotificationResponse converts domain.Notification to DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		AgencyID:       n.AgencyID,
		Kind:           n.Kind,
		Title:          n.Title,
		Body:           n.Body,
		RefID:          n.RefID,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}

// ListNotificationsResponse wraps a page of notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// UnreadCountResponse is the payload the UI polls for its badge.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
