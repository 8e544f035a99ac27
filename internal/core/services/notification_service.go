package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/agencydesk/agency_desk_app/pkg/cache"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const unreadCountTTL = 30 * time.Second

// notificationService implements the NotificationSvcFacade interface. The
// unread counter is cached in Redis for a short window since it is polled by
// clients far more often than it changes.
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepository
	cache            *cache.Redis
}

// NewNotificationService creates a new notification service with the provided dependencies
func NewNotificationService(notificationRepo portsrepo.NotificationRepository, cacheClient *cache.Redis) portssvc.NotificationSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
		cache:            cacheClient,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func unreadCountKey(agencyID, userID string) string {
	return fmt.Sprintf("notif:unread:%s:%s", agencyID, userID)
}

func (s *notificationService) invalidateUnreadCount(ctx context.Context, agencyID, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, unreadCountKey(agencyID, userID)).Err(); err != nil {
		s.LogDebug(ctx, "Failed to invalidate unread counter cache",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
	}
}

// Notify persists a notification for a user.
func (s *notificationService) Notify(ctx context.Context, agencyID string, userID string, kind domain.NotificationKind, title string, body string, refID string) error {
	now := time.Now()
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		AgencyID:       agencyID,
		UserID:         userID,
		Kind:           kind,
		Title:          title,
		Body:           body,
		RefID:          refID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "Failed to save notification",
			slog.String("user_id", userID),
			slog.String("kind", string(kind)))
		return err
	}

	s.invalidateUnreadCount(ctx, agencyID, userID)
	return nil
}

func (s *notificationService) ListMyNotifications(ctx context.Context, agencyID string, userID string, params dto.ListNotificationsParams) (*dto.ListNotificationsResponse, error) {
	notifications, nextToken, err := s.notificationRepo.ListNotificationsByUser(ctx, agencyID, userID, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", userID))
		}
		return nil, err
	}

	items := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = dto.ToNotificationResponse(&n)
	}
	return &dto.ListNotificationsResponse{
		Notifications: items,
		NextToken:     nextToken,
	}, nil
}

// UnreadCount returns the number of unread notifications, served from the
// Redis cache when fresh.
func (s *notificationService) UnreadCount(ctx context.Context, agencyID string, userID string) (int, error) {
	key := unreadCountKey(agencyID, userID)
	if s.cache != nil {
		cached, err := s.cache.Client.Get(ctx, key).Result()
		if err == nil {
			if count, parseErr := strconv.Atoi(cached); parseErr == nil {
				return count, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.LogDebug(ctx, "Unread counter cache read failed",
				slog.String("error", err.Error()),
				slog.String("user_id", userID))
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, agencyID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count unread notifications", slog.String("user_id", userID))
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Client.Set(ctx, key, strconv.Itoa(count), unreadCountTTL).Err(); err != nil {
			s.LogDebug(ctx, "Unread counter cache write failed",
				slog.String("error", err.Error()),
				slog.String("user_id", userID))
		}
	}
	return count, nil
}

// MarkRead marks one notification as read. Only the recipient can do this.
func (s *notificationService) MarkRead(ctx context.Context, agencyID string, notificationID string, userID string) error {
	notification, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.AgencyID != agencyID || notification.UserID != userID {
		return fmt.Errorf("notification %s not found: %w", notificationID, apperrors.ErrNotFound)
	}
	if notification.IsRead() {
		return nil
	}

	if err := s.notificationRepo.MarkRead(ctx, notificationID, time.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Already marked read by a concurrent request.
			return nil
		}
		s.LogError(ctx, err, "Failed to mark notification read", slog.String("notification_id", notificationID))
		return err
	}

	s.invalidateUnreadCount(ctx, agencyID, userID)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, agencyID string, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, agencyID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to mark all notifications read", slog.String("user_id", userID))
		return err
	}
	s.invalidateUnreadCount(ctx, agencyID, userID)
	return nil
}
