package domain

import "time"

// Notification is a message addressed to a user. UserID is a reference, not ownership.
type Notification struct {
	NotificationID string    `json:"notificationId" bson:"notificationId" validate:"required"`
	UserID         string    `json:"userId" bson:"userId" validate:"required"`
	DeliveryID     string    `json:"deliveryId" bson:"deliveryId"`
	Message        string    `json:"message" bson:"message" validate:"required"`
	Type           string    `json:"type" bson:"type" validate:"required"`
	Status         string    `json:"status" bson:"status"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// NotificationPatch carries the fields supplied to an update.
type NotificationPatch struct {
	UserID     *string `json:"userId,omitempty" validate:"omitempty,min=1"`
	DeliveryID *string `json:"deliveryId,omitempty"`
	Message    *string `json:"message,omitempty" validate:"omitempty,min=1"`
	Type       *string `json:"type,omitempty" validate:"omitempty,min=1"`
	Status     *string `json:"status,omitempty"`
}

// Fields returns the supplied values keyed by stored field name.
func (p NotificationPatch) Fields() map[string]any {
	fields := make(map[string]any, 5)
	if p.UserID != nil {
		fields["userId"] = *p.UserID
	}
	if p.DeliveryID != nil {
		fields["deliveryId"] = *p.DeliveryID
	}
	if p.Message != nil {
		fields["message"] = *p.Message
	}
	if p.Type != nil {
		fields["type"] = *p.Type
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	return fields
}

// Apply merges the patch into n.
func (p NotificationPatch) Apply(n *Notification) {
	if p.UserID != nil {
		n.UserID = *p.UserID
	}
	if p.DeliveryID != nil {
		n.DeliveryID = *p.DeliveryID
	}
	if p.Message != nil {
		n.Message = *p.Message
	}
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
}
