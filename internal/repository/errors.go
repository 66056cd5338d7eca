package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the filter.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Collection and table names shared by every backend.
const (
	UsersCollection         = "users"
	NotificationsCollection = "notifications"
)
