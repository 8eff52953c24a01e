package notification

import "context"

// Repository persists device tokens and notification records.
type Repository interface {
	UpsertDeviceToken(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error)
	ListActiveTokens(ctx context.Context, userID int64) ([]*DeviceToken, error)
	DeactivateToken(ctx context.Context, token string) error

	CreateNotification(ctx context.Context, params CreateNotificationParams) (*Notification, error)
	GetNotification(ctx context.Context, id string) (*Notification, error)
	ListNotifications(ctx context.Context, userID int64, limit, offset int) ([]*Notification, int, error)
	MarkOpened(ctx context.Context, id string) error
}
