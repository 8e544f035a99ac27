package repositories

import (
	"context"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// NotificationRepository persists notifications.
type NotificationRepository interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
	FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error)
	// ListNotificationsByUser pages newest-first with an opaque created-at
	// token; it returns the next token when more rows remain.
	ListNotificationsByUser(ctx context.Context, agencyID string, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error)
	CountUnread(ctx context.Context, agencyID string, userID string) (int, error)
	MarkRead(ctx context.Context, notificationID string, readAt time.Time) error
	MarkAllRead(ctx context.Context, agencyID string, userID string, readAt time.Time) error
}
