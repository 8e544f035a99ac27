package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_desk_app/internal/models"
	"github.com/agencydesk/agency_desk_app/internal/utils/pagination"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

func toDomainNotification(m models.Notification) domain.Notification {
	d := domain.Notification{
		NotificationID: m.NotificationID,
		AgencyID:       m.AgencyID,
		UserID:         m.UserID,
		Kind:           domain.NotificationKind(m.Kind),
		Title:          m.Title,
		Body:           m.Body,
		RefID:          m.RefID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ReadAt.Valid {
		d.ReadAt = &m.ReadAt.Time
	}
	return d
}

const notificationColumns = `notification_id, agency_id, user_id, kind, title, body, ref_id, read_at, created_at, created_by, last_updated_at, last_updated_by`

func scanNotification(row pgx.Row) (models.Notification, error) {
	var m models.Notification
	err := row.Scan(
		&m.NotificationID,
		&m.AgencyID,
		&m.UserID,
		&m.Kind,
		&m.Title,
		&m.Body,
		&m.RefID,
		&m.ReadAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, agency_id, user_id, kind, title, body, ref_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		notification.NotificationID,
		notification.AgencyID,
		notification.UserID,
		string(notification.Kind),
		notification.Title,
		notification.Body,
		notification.RefID,
		notification.CreatedAt,
		notification.CreatedBy,
		notification.LastUpdatedAt,
		notification.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (r *PgxNotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE notification_id = $1;`
	m, err := scanNotification(r.Pool.QueryRow(ctx, query, notificationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find notification by ID %s: %w", notificationID, err)
	}
	d := toDomainNotification(m)
	return &d, nil
}

// ListNotificationsByUser pages newest first using keyset pagination on
// (created_at, notification_id). The returned token is nil on the last page.
func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, agencyID string, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{agencyID, userID}
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE agency_id = $1 AND user_id = $2`

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeDateIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, notification_id) < ($3, $4)`
		args = append(args, createdAt, id)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, notification_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		m, err := scanNotification(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, toDomainNotification(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating notification rows: %w", rows.Err())
	}

	var token *string
	if len(notifications) > limit {
		notifications = notifications[:limit]
		last := notifications[len(notifications)-1]
		t := pagination.EncodeDateIDToken(last.CreatedAt, last.NotificationID)
		token = &t
	}
	return notifications, token, nil
}

func (r *PgxNotificationRepository) CountUnread(ctx context.Context, agencyID string, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE agency_id = $1 AND user_id = $2 AND read_at IS NULL;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, agencyID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *PgxNotificationRepository) MarkRead(ctx context.Context, notificationID string, readAt time.Time) error {
	query := `
		UPDATE notifications
		SET read_at = $1, last_updated_at = $1
		WHERE notification_id = $2 AND read_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, readAt, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNotificationRepository) MarkAllRead(ctx context.Context, agencyID string, userID string, readAt time.Time) error {
	query := `
		UPDATE notifications
		SET read_at = $1, last_updated_at = $1
		WHERE agency_id = $2 AND user_id = $3 AND read_at IS NULL;
	`
	if _, err := r.Pool.Exec(ctx, query, readAt, agencyID, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
