package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spec-kit/user-notification-service/internal/domain"
	"github.com/spec-kit/user-notification-service/internal/events"
	"github.com/spec-kit/user-notification-service/internal/repository"
	apperrors "github.com/spec-kit/user-notification-service/pkg/util"
)

// NotificationService implements notification CRUD.
type NotificationService struct {
	notifications repository.NotificationRepository
	validate      *validator.Validate
	events        publisher
	now           func() time.Time
}

// NotificationDependencies encapsulates collaborators for the notification service.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: deps.NotificationRepo,
		validate:      newValidator(),
		events:        publisher{dispatcher: deps.Dispatcher, logger: logger},
		now:           time.Now,
	}
}

// Create stores a notification. CreatedAt defaults to the current time.
func (s *NotificationService) Create(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	if err := s.validate.Struct(n); err != nil {
		return nil, validationError(err)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	if err := s.notifications.Create(ctx, &n); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.NewConflict("Notification already exists", nil)
		}
		return nil, apperrors.NewRequestFailed(http.StatusBadRequest, "Error creating notification", err)
	}

	s.events.publish(ctx, events.EventNotificationCreated, n.NotificationID, events.NotificationPayload{
		UserID: n.UserID,
		Type:   n.Type,
		Status: n.Status,
	})
	return &n, nil
}

// List returns every stored notification.
func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	items, err := s.notifications.List(ctx)
	if err != nil {
		return nil, apperrors.NewRequestFailed(http.StatusNotFound, "No notifications found", err)
	}
	return items, nil
}

// Get returns one notification by id.
func (s *NotificationService) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Notification does not exist", nil)
		}
		return nil, apperrors.NewRequestFailed(http.StatusNotFound, "Error fetching notification", err)
	}
	return n, nil
}

// Update applies the supplied fields and returns the stored result. A missing
// notification wins over an invalid patch.
func (s *NotificationService) Update(ctx context.Context, notificationID string, patch domain.NotificationPatch) (*domain.Notification, error) {
	if err := s.validate.Struct(patch); err != nil {
		if _, getErr := s.notifications.GetByID(ctx, notificationID); errors.Is(getErr, repository.ErrNotFound) {
			return nil, apperrors.NewConflict("Notification does not exist", nil)
		}
		return nil, validationError(err)
	}

	n, err := s.notifications.Update(ctx, notificationID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewConflict("Notification does not exist", nil)
		}
		return nil, apperrors.NewRequestFailed(http.StatusBadRequest, "Error updating notification", err)
	}

	s.events.publish(ctx, events.EventNotificationUpdated, notificationID, events.NotificationPayload{
		UserID: n.UserID,
		Status: n.Status,
		Fields: fieldNames(patch.Fields()),
	})
	return n, nil
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, notificationID string) (*domain.DeleteResult, error) {
	deleted, err := s.notifications.Delete(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewConflict("Notification does not exist", nil)
		}
		return nil, apperrors.NewRequestFailed(http.StatusBadRequest, "Error deleting notification", err)
	}

	s.events.publish(ctx, events.EventNotificationDeleted, notificationID, nil)
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}
