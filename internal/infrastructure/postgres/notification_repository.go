package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"caixahub/internal/domain/notification"
)

// NotificationRepository implements the notification.Repository interface for PostgreSQL
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new PostgreSQL notification repository
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// UpsertDeviceToken registers or updates a device token for a user.
// If the token exists for a different user, it is reassigned.
func (r *NotificationRepository) UpsertDeviceToken(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error) {
	// Reassign if the token belongs to another user
	_, err := r.db.ExecContext(ctx,
		`UPDATE fcm_device_tokens SET user_id = $1, is_active = true, last_used = NOW() WHERE token = $2 AND user_id != $1`,
		params.UserID, params.Token,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reassign device token: %w", err)
	}

	query := `
		INSERT INTO fcm_device_tokens (user_id, token, device_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE
			SET user_id = EXCLUDED.user_id,
			    device_type = EXCLUDED.device_type,
			    is_active = true,
			    last_used = NOW()
		RETURNING id, user_id, token, device_type, is_active, created_at, last_used
	`

	var dt notification.DeviceToken
	err = r.db.QueryRowContext(ctx, query, params.UserID, params.Token, params.DeviceType).Scan(
		&dt.ID, &dt.UserID, &dt.Token, &dt.DeviceType, &dt.IsActive, &dt.CreatedAt, &dt.LastUsed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert device token: %w", err)
	}

	return &dt, nil
}

func (r *NotificationRepository) ListActiveTokens(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	query := `
		SELECT id, user_id, token, device_type, is_active, created_at, last_used
		FROM fcm_device_tokens
		WHERE user_id = $1 AND is_active = true
		ORDER BY last_used DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*notification.DeviceToken
	for rows.Next() {
		var dt notification.DeviceToken
		if err := rows.Scan(&dt.ID, &dt.UserID, &dt.Token, &dt.DeviceType, &dt.IsActive, &dt.CreatedAt, &dt.LastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, &dt)
	}

	return tokens, rows.Err()
}

// DeactivateToken marks a token inactive. Called when FCM reports the
// token as unregistered or invalid.
func (r *NotificationRepository) DeactivateToken(ctx context.Context, token string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE fcm_device_tokens SET is_active = false WHERE token = $1`,
		token,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate device token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deactivate result: %w", err)
	}
	if affected == 0 {
		return notification.ErrDeviceTokenNotFound
	}

	return nil
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, params notification.CreateNotificationParams) (*notification.Notification, error) {
	data, err := json.Marshal(params.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (user_id, title, message, category, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, message, category, data, opened_at, created_at
	`

	return scanNotification(r.db.QueryRowContext(ctx, query, params.UserID, params.Title, params.Message, params.Category, data))
}

func (r *NotificationRepository) GetNotification(ctx context.Context, id string) (*notification.Notification, error) {
	query := `
		SELECT id, user_id, title, message, category, data, opened_at, created_at
		FROM notifications
		WHERE id = $1
	`
	return scanNotification(r.db.QueryRowContext(ctx, query, id))
}

// ListNotifications returns a page of notifications for a user, newest
// first, along with the total count for pagination.
func (r *NotificationRepository) ListNotifications(ctx context.Context, userID int64, limit, offset int) ([]*notification.Notification, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, user_id, title, message, category, data, opened_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		var data []byte
		var openedAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Category, &data, &openedAt, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		if openedAt.Valid {
			n.OpenedAt = &openedAt.Time
		}
		notifications = append(notifications, &n)
	}

	return notifications, total, rows.Err()
}

func (r *NotificationRepository) MarkOpened(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET opened_at = NOW() WHERE id = $1 AND opened_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification opened: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check mark opened result: %w", err)
	}

	return nil
}

func scanNotification(row *tracedRow) (*notification.Notification, error) {
	var n notification.Notification
	var data []byte
	var openedAt sql.NullTime

	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Category, &data, &openedAt, &n.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, notification.ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan notification: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
		}
	}
	if openedAt.Valid {
		n.OpenedAt = &openedAt.Time
	}

	return &n, nil
}
