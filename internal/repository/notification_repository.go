package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-notification-service/internal/domain"
)

// NotificationRepository defines persistence access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	GetByID(ctx context.Context, notificationID string) (*domain.Notification, error)
	List(ctx context.Context) ([]domain.Notification, error)
	Update(ctx context.Context, notificationID string, patch domain.NotificationPatch) (*domain.Notification, error)
	Delete(ctx context.Context, notificationID string) (int64, error)
}

var notificationColumns = map[string]string{
	"userId":     "user_id",
	"deliveryId": "delivery_id",
	"message":    "message",
	"type":       "type",
	"status":     "status",
}

const (
	notificationFields = `notification_id, user_id, delivery_id, message, type, status, created_at`
	notificationSelect = `SELECT ` + notificationFields + ` FROM notifications`
)

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a Postgres-backed implementation.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const query = `
        INSERT INTO notifications (notification_id, user_id, delivery_id, message, type, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.pool.Exec(ctx, query,
		n.NotificationID,
		n.UserID,
		n.DeliveryID,
		n.Message,
		n.Type,
		n.Status,
		n.CreatedAt,
	)
	return mapPgError(err)
}

func (r *notificationRepository) GetByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	return scanNotification(r.pool.QueryRow(ctx, notificationSelect+" WHERE notification_id=$1", notificationID))
}

func (r *notificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx, notificationSelect+" ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	return result, rows.Err()
}

func (r *notificationRepository) Update(ctx context.Context, notificationID string, patch domain.NotificationPatch) (*domain.Notification, error) {
	setClause, args, err := buildSetClause(patch.Fields(), notificationColumns)
	if err != nil {
		return nil, err
	}
	if setClause == "" {
		return r.GetByID(ctx, notificationID)
	}
	args = append(args, notificationID)
	query := fmt.Sprintf(`UPDATE notifications SET %s WHERE notification_id=$%d RETURNING %s`,
		setClause, len(args), notificationFields)

	n, err := scanNotification(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return n, nil
}

func (r *notificationRepository) Delete(ctx context.Context, notificationID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE notification_id=$1`, notificationID)
	if err != nil {
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return cmd.RowsAffected(), nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	if err := row.Scan(
		&n.NotificationID,
		&n.UserID,
		&n.DeliveryID,
		&n.Message,
		&n.Type,
		&n.Status,
		&n.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}
