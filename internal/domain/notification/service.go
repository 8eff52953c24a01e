package notification

import (
	"context"
	"errors"
	"log"

	"caixahub/internal/domain/usage"
)

// Service contains the business logic for notification operations
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a new notification service
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice registers a device token for the authenticated user.
// If the token already belongs to another user, it is reassigned.
func (s *Service) RegisterDevice(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpsertDeviceToken(ctx, params)
}

// ListNotifications returns paginated notifications for a user along with
// the total count.
func (s *Service) ListNotifications(ctx context.Context, userID int64, limit, offset int) ([]*Notification, int, error) {
	if userID <= 0 {
		return nil, 0, errors.New("valid user ID is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListNotifications(ctx, userID, limit, offset)
}

// MarkOpened records that the user opened a notification.
func (s *Service) MarkOpened(ctx context.Context, id string, userID int64) error {
	n, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return ErrForbidden
	}
	return s.repo.MarkOpened(ctx, id)
}

// Notify stores a notification record and pushes it to every active
// device of the user. Push failures are logged, not returned: the stored
// record is the source of truth and delivery is best effort.
func (s *Service) Notify(ctx context.Context, params CreateNotificationParams) (*Notification, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n, err := s.repo.CreateNotification(ctx, params)
	if err != nil {
		return nil, err
	}

	tokens, err := s.repo.ListActiveTokens(ctx, params.UserID)
	if err != nil {
		log.Printf("Failed to list device tokens for user %d: %v", params.UserID, err)
		return n, nil
	}
	if len(tokens) == 0 || s.messenger == nil {
		return n, nil
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}
	if err := s.messenger.SendMulticast(ctx, tokenStrings, params.Title, params.Message, params.Data); err != nil {
		log.Printf("Failed to push notification %s to user %d: %v", n.ID, params.UserID, err)
	}

	return n, nil
}

// NotifyUsageAlert delivers a plan-limit alert to the user.
func (s *Service) NotifyUsageAlert(ctx context.Context, userID int64, alert *usage.Alert) (*Notification, error) {
	if alert == nil {
		return nil, errors.New("alert is required")
	}
	return s.Notify(ctx, CreateNotificationParams{
		UserID:   userID,
		Title:    alert.Title,
		Message:  alert.Description,
		Category: CategoryLimits,
		Data: map[string]string{
			"kind":     alert.Kind,
			"severity": alert.Severity,
		},
	})
}
