package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/user-notification-service/internal/domain"
)

// MemoryUserRepository keeps users in process memory. It enforces the same
// unique keys as the document store and preserves insertion order.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.User
	order []string
}

// NewMemoryUserRepository returns an empty store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byID: make(map[string]domain.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[user.UserID]; exists {
		return ErrDuplicateKey
	}
	if r.emailTaken(user.Email, "") {
		return ErrDuplicateKey
	}
	r.byID[user.UserID] = *user
	r.order = append(r.order, user.UserID)
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if user := r.byID[id]; user.Email == email {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.byID[id])
	}
	return users, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, userID) {
		return nil, ErrDuplicateKey
	}
	patch.Apply(&user)
	r.byID[userID] = user
	return &user, nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[userID]; !ok {
		return 0, ErrNotFound
	}
	delete(r.byID, userID)
	r.order = removeKey(r.order, userID)
	return 1, nil
}

// emailTaken must be called with the lock held.
func (r *MemoryUserRepository) emailTaken(email, exceptID string) bool {
	for id, user := range r.byID {
		if id != exceptID && user.Email == email {
			return true
		}
	}
	return false
}

// MemoryNotificationRepository keeps notifications in process memory.
type MemoryNotificationRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Notification
	order []string
}

// NewMemoryNotificationRepository returns an empty store.
func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{byID: make(map[string]domain.Notification)}
}

func (r *MemoryNotificationRepository) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[n.NotificationID]; exists {
		return ErrDuplicateKey
	}
	r.byID[n.NotificationID] = *n
	r.order = append(r.order, n.NotificationID)
	return nil
}

func (r *MemoryNotificationRepository) GetByID(_ context.Context, notificationID string) (*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.byID[notificationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (r *MemoryNotificationRepository) List(_ context.Context) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Notification, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result, nil
}

func (r *MemoryNotificationRepository) Update(_ context.Context, notificationID string, patch domain.NotificationPatch) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byID[notificationID]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&n)
	r.byID[notificationID] = n
	return &n, nil
}

func (r *MemoryNotificationRepository) Delete(_ context.Context, notificationID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[notificationID]; !ok {
		return 0, ErrNotFound
	}
	delete(r.byID, notificationID)
	r.order = removeKey(r.order, notificationID)
	return 1, nil
}

func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
