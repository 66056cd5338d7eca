package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user.registered"
	EventUserLoggedIn        EventType = "user.logged_in"
	EventUserUpdated         EventType = "user.updated"
	EventUserDeleted         EventType = "user.deleted"
	EventNotificationCreated EventType = "notification.created"
	EventNotificationUpdated EventType = "notification.updated"
	EventNotificationDeleted EventType = "notification.deleted"
)

// AllEventTypes lists every type services publish.
var AllEventTypes = []EventType{
	EventUserRegistered,
	EventUserLoggedIn,
	EventUserUpdated,
	EventUserDeleted,
	EventNotificationCreated,
	EventNotificationUpdated,
	EventNotificationDeleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserPayload describes a user event. It never carries the password hash.
type UserPayload struct {
	Email  string   `json:"email,omitempty"`
	Role   string   `json:"role,omitempty"`
	Status string   `json:"status,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// NotificationPayload describes a notification event.
type NotificationPayload struct {
	UserID string   `json:"user_id,omitempty"`
	Type   string   `json:"type,omitempty"`
	Status string   `json:"status,omitempty"`
	Fields []string `json:"fields,omitempty"`
}
