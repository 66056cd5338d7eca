package dto

import (
	"time"

	"github.com/spec-kit/user-notification-service/internal/domain"
)

// NotificationCreateRequest payload for new notifications.
type NotificationCreateRequest struct {
	NotificationID string     `json:"notificationId"`
	UserID         string     `json:"userId"`
	DeliveryID     string     `json:"deliveryId"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

// ToDomain converts the request. A missing createdAt stays zero.
func (r NotificationCreateRequest) ToDomain() domain.Notification {
	n := domain.Notification{
		NotificationID: r.NotificationID,
		UserID:         r.UserID,
		DeliveryID:     r.DeliveryID,
		Message:        r.Message,
		Type:           r.Type,
		Status:         r.Status,
	}
	if r.CreatedAt != nil {
		n.CreatedAt = r.CreatedAt.UTC()
	}
	return n
}

// NotificationUpdateRequest carries the supplied fields of a notification update.
type NotificationUpdateRequest = domain.NotificationPatch
