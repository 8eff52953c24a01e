package notification

import (
	"context"
	"errors"
	"testing"

	"caixahub/internal/domain/usage"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	UpsertDeviceTokenFunc  func(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error)
	ListActiveTokensFunc   func(ctx context.Context, userID int64) ([]*DeviceToken, error)
	DeactivateTokenFunc    func(ctx context.Context, token string) error
	CreateNotificationFunc func(ctx context.Context, params CreateNotificationParams) (*Notification, error)
	GetNotificationFunc    func(ctx context.Context, id string) (*Notification, error)
	ListNotificationsFunc  func(ctx context.Context, userID int64, limit, offset int) ([]*Notification, int, error)
	MarkOpenedFunc         func(ctx context.Context, id string) error
}

func (m *MockRepository) UpsertDeviceToken(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error) {
	if m.UpsertDeviceTokenFunc != nil {
		return m.UpsertDeviceTokenFunc(ctx, params)
	}
	return &DeviceToken{UserID: params.UserID, Token: params.Token, IsActive: true}, nil
}

func (m *MockRepository) ListActiveTokens(ctx context.Context, userID int64) ([]*DeviceToken, error) {
	if m.ListActiveTokensFunc != nil {
		return m.ListActiveTokensFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) DeactivateToken(ctx context.Context, token string) error {
	if m.DeactivateTokenFunc != nil {
		return m.DeactivateTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockRepository) CreateNotification(ctx context.Context, params CreateNotificationParams) (*Notification, error) {
	if m.CreateNotificationFunc != nil {
		return m.CreateNotificationFunc(ctx, params)
	}
	return &Notification{ID: "n-1", UserID: params.UserID, Title: params.Title, Message: params.Message, Category: params.Category, Data: params.Data}, nil
}

func (m *MockRepository) GetNotification(ctx context.Context, id string) (*Notification, error) {
	if m.GetNotificationFunc != nil {
		return m.GetNotificationFunc(ctx, id)
	}
	return nil, ErrNotificationNotFound
}

func (m *MockRepository) ListNotifications(ctx context.Context, userID int64, limit, offset int) ([]*Notification, int, error) {
	if m.ListNotificationsFunc != nil {
		return m.ListNotificationsFunc(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

func (m *MockRepository) MarkOpened(ctx context.Context, id string) error {
	if m.MarkOpenedFunc != nil {
		return m.MarkOpenedFunc(ctx, id)
	}
	return nil
}

// MockMessenger is a mock implementation of Messenger
type MockMessenger struct {
	SendFunc          func(ctx context.Context, token string, title, body string, data map[string]string) error
	SendMulticastFunc func(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

func (m *MockMessenger) Send(ctx context.Context, token string, title, body string, data map[string]string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, token, title, body, data)
	}
	return nil
}

func (m *MockMessenger) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if m.SendMulticastFunc != nil {
		return m.SendMulticastFunc(ctx, tokens, title, body, data)
	}
	return nil
}

func TestService_RegisterDevice_Validation(t *testing.T) {
	svc := NewService(&MockRepository{}, &MockMessenger{})

	if _, err := svc.RegisterDevice(context.Background(), CreateDeviceTokenParams{UserID: 1, Token: "tok", DeviceType: "web"}); err != nil {
		t.Errorf("RegisterDevice() unexpected error: %v", err)
	}
	if _, err := svc.RegisterDevice(context.Background(), CreateDeviceTokenParams{UserID: 1, DeviceType: "web"}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("RegisterDevice() error = %v, want %v", err, ErrInvalidToken)
	}
	if _, err := svc.RegisterDevice(context.Background(), CreateDeviceTokenParams{UserID: 1, Token: "tok", DeviceType: "desktop"}); !errors.Is(err, ErrInvalidDeviceType) {
		t.Errorf("RegisterDevice() error = %v, want %v", err, ErrInvalidDeviceType)
	}
}

func TestService_Notify_PushesToActiveDevices(t *testing.T) {
	var pushed []string
	repo := &MockRepository{
		ListActiveTokensFunc: func(ctx context.Context, userID int64) ([]*DeviceToken, error) {
			return []*DeviceToken{{Token: "tok-1"}, {Token: "tok-2"}}, nil
		},
	}
	messenger := &MockMessenger{
		SendMulticastFunc: func(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
			pushed = tokens
			return nil
		},
	}
	svc := NewService(repo, messenger)

	n, err := svc.Notify(context.Background(), CreateNotificationParams{
		UserID:   1,
		Title:    "Fatura disponível",
		Message:  "Sua fatura de março está disponível.",
		Category: CategoryGeneral,
	})
	if err != nil {
		t.Fatalf("Notify() unexpected error: %v", err)
	}
	if n == nil {
		t.Fatal("Notify() returned nil notification")
	}
	if len(pushed) != 2 {
		t.Errorf("pushed to %d tokens, want 2", len(pushed))
	}
}

func TestService_Notify_PushFailureStillStores(t *testing.T) {
	repo := &MockRepository{
		ListActiveTokensFunc: func(ctx context.Context, userID int64) ([]*DeviceToken, error) {
			return []*DeviceToken{{Token: "tok-1"}}, nil
		},
	}
	messenger := &MockMessenger{
		SendMulticastFunc: func(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
			return errors.New("fcm unavailable")
		},
	}
	svc := NewService(repo, messenger)

	n, err := svc.Notify(context.Background(), CreateNotificationParams{
		UserID:   1,
		Title:    "t",
		Message:  "m",
		Category: CategoryGeneral,
	})
	if err != nil {
		t.Fatalf("Notify() unexpected error: %v", err)
	}
	if n == nil {
		t.Fatal("Notify() returned nil notification despite stored record")
	}
}

func TestService_NotifyUsageAlert(t *testing.T) {
	var stored CreateNotificationParams
	repo := &MockRepository{
		CreateNotificationFunc: func(ctx context.Context, params CreateNotificationParams) (*Notification, error) {
			stored = params
			return &Notification{ID: "n-1", UserID: params.UserID}, nil
		},
	}
	svc := NewService(repo, &MockMessenger{})

	alert := usage.AlertFor(usage.KindBankAccounts, 3, 3)
	if alert == nil {
		t.Fatal("expected at-limit alert")
	}

	if _, err := svc.NotifyUsageAlert(context.Background(), 1, alert); err != nil {
		t.Fatalf("NotifyUsageAlert() unexpected error: %v", err)
	}
	if stored.Category != CategoryLimits {
		t.Errorf("Category = %q, want %q", stored.Category, CategoryLimits)
	}
	if stored.Data["kind"] != usage.KindBankAccounts {
		t.Errorf("Data[kind] = %q, want %q", stored.Data["kind"], usage.KindBankAccounts)
	}

	if _, err := svc.NotifyUsageAlert(context.Background(), 1, nil); err == nil {
		t.Error("NotifyUsageAlert() expected error for nil alert")
	}
}

func TestService_MarkOpened_OwnershipCheck(t *testing.T) {
	repo := &MockRepository{
		GetNotificationFunc: func(ctx context.Context, id string) (*Notification, error) {
			return &Notification{ID: id, UserID: 1}, nil
		},
	}
	svc := NewService(repo, &MockMessenger{})

	if err := svc.MarkOpened(context.Background(), "n-1", 1); err != nil {
		t.Errorf("MarkOpened() unexpected error: %v", err)
	}
	if err := svc.MarkOpened(context.Background(), "n-1", 2); !errors.Is(err, ErrForbidden) {
		t.Errorf("MarkOpened() error = %v, want %v", err, ErrForbidden)
	}
}
