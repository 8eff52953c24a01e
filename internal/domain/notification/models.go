package notification

import (
	"errors"
	"time"
)

// Notification categories
const (
	CategoryLimits   = "limits"
	CategoryBills    = "bills"
	CategoryAccounts = "accounts"
	CategoryGeneral  = "general"
)

var validCategories = map[string]struct{}{
	CategoryLimits:   {},
	CategoryBills:    {},
	CategoryAccounts: {},
	CategoryGeneral:  {},
}

var validDeviceTypes = map[string]struct{}{
	"ios":     {},
	"android": {},
	"web":     {},
}

// Domain errors
var (
	ErrDeviceTokenNotFound  = errors.New("device token not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidCategory      = errors.New("invalid notification category")
	ErrInvalidDeviceType    = errors.New("device type must be 'ios', 'android' or 'web'")
	ErrInvalidToken         = errors.New("device token is required")
	ErrForbidden            = errors.New("access forbidden")
)

// DeviceToken represents a registered FCM device token
type DeviceToken struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"userId"`
	Token      string    `json:"token"`
	DeviceType string    `json:"deviceType"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	LastUsed   time.Time `json:"lastUsed"`
}

// Notification represents a stored notification record
type Notification struct {
	ID        string            `json:"id"`
	UserID    int64             `json:"-"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Category  string            `json:"category"`
	Data      map[string]string `json:"data"`
	OpenedAt  *time.Time        `json:"openedAt"`
	CreatedAt time.Time         `json:"createdAt"`
}

// CreateDeviceTokenParams contains parameters for registering a device
type CreateDeviceTokenParams struct {
	UserID     int64
	Token      string
	DeviceType string
}

func (p CreateDeviceTokenParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Token == "" {
		return ErrInvalidToken
	}
	if !IsValidDeviceType(p.DeviceType) {
		return ErrInvalidDeviceType
	}
	return nil
}

// CreateNotificationParams contains parameters for storing a notification
type CreateNotificationParams struct {
	UserID   int64
	Title    string
	Message  string
	Category string
	Data     map[string]string
}

func (p CreateNotificationParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Title == "" {
		return errors.New("notification title is required")
	}
	if p.Message == "" {
		return errors.New("notification message is required")
	}
	if !IsValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// IsValidCategory checks if the provided category is valid.
func IsValidCategory(c string) bool {
	_, ok := validCategories[c]
	return ok
}

// IsValidDeviceType checks if the provided device type is valid.
func IsValidDeviceType(t string) bool {
	_, ok := validDeviceTypes[t]
	return ok
}
