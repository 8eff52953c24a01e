package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"caixahub/internal/domain/notification"
	"caixahub/internal/shared/middleware"
)

type NotificationHandler struct {
	notificationService *notification.Service
}

func NewNotificationHandler(notificationService *notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type RegisterDeviceRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"deviceType"`
}

type NotificationListResponse struct {
	Notifications []*notification.Notification `json:"notifications"`
	Total         int                          `json:"total"`
}

// HandleRegisterDevice handles POST /api/notifications/devices
func (h *NotificationHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dt, err := h.notificationService.RegisterDevice(r.Context(), notification.CreateDeviceTokenParams{
		UserID:     userID,
		Token:      req.Token,
		DeviceType: req.DeviceType,
	})
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrInvalidToken),
			errors.Is(err, notification.ErrInvalidDeviceType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error registering device for user %d: %v", userID, err)
			http.Error(w, "Failed to register device", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dt)
}

// HandleListNotifications handles GET /api/notifications
func (h *NotificationHandler) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	notifications, total, err := h.notificationService.ListNotifications(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("Error listing notifications for user %d: %v", userID, err)
		http.Error(w, "Failed to list notifications", http.StatusInternalServerError)
		return
	}

	if notifications == nil {
		notifications = []*notification.Notification{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NotificationListResponse{
		Notifications: notifications,
		Total:         total,
	})
}

// HandleMarkOpened handles POST /api/notifications/{id}/open
func (h *NotificationHandler) HandleMarkOpened(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err := h.notificationService.MarkOpened(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrNotificationNotFound):
			http.Error(w, "Notification not found", http.StatusNotFound)
		case errors.Is(err, notification.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("Error marking notification opened for user %d: %v", userID, err)
			http.Error(w, "Failed to mark notification", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
