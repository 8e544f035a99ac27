package services

import (
	"context"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/agencydesk/agency_desk_app/internal/dto"
)

// Notifier is the narrow interface business services use to emit
// notifications without depending on the full facade.
type Notifier interface {
	Notify(ctx context.Context, agencyID string, userID string, kind domain.NotificationKind, title string, body string, refID string) error
}

// NotificationSvcFacade exposes notification delivery and read tracking.
type NotificationSvcFacade interface {
	Notifier

	ListMyNotifications(ctx context.Context, agencyID string, userID string, params dto.ListNotificationsParams) (*dto.ListNotificationsResponse, error)
	UnreadCount(ctx context.Context, agencyID string, userID string) (int, error)
	MarkRead(ctx context.Context, agencyID string, notificationID string, userID string) error
	MarkAllRead(ctx context.Context, agencyID string, userID string) error
}
