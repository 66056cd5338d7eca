package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/user-notification-service/internal/config"
	"github.com/spec-kit/user-notification-service/internal/domain"
	"github.com/spec-kit/user-notification-service/internal/persistence"
	"github.com/spec-kit/user-notification-service/internal/repository"
)

// Runs against a real database only when POSTGRES_TEST_DSN is set.
func openTestPostgres(t *testing.T) *persistence.Postgres {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	pg, err := persistence.NewPostgres(context.Background(), config.PostgresConfig{
		DSN:           dsn,
		RunMigrations: true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pg.Close)
	return pg
}

func TestPostgresUserRepository(t *testing.T) {
	pg := openTestPostgres(t)
	repo := repository.NewUserRepository(pg.PoolHandle())
	ctx := context.Background()

	email := uuid.NewString() + "@example.com"
	user := &domain.User{
		UserID:    uuid.NewString(),
		Name:      "Ada",
		Email:     email,
		Password:  "$2a$10$hash",
		Role:      "admin",
		Status:    domain.UserStatusNew,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, user))

	dup := *user
	dup.UserID = uuid.NewString()
	require.ErrorIs(t, repo.Create(ctx, &dup), repository.ErrDuplicateKey)

	got, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)

	status := domain.UserStatusActive
	updated, err := repo.Update(ctx, user.UserID, domain.UserPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, updated.Status)

	_, err = repo.Update(ctx, uuid.NewString(), domain.UserPatch{Status: &status})
	require.ErrorIs(t, err, repository.ErrNotFound)

	n, err := repo.Delete(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetByID(ctx, user.UserID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostgresNotificationRepository(t *testing.T) {
	pg := openTestPostgres(t)
	repo := repository.NewNotificationRepository(pg.PoolHandle())
	ctx := context.Background()

	n := &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         uuid.NewString(),
		Message:        "hello",
		Type:           "email",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, n))
	require.ErrorIs(t, repo.Create(ctx, n), repository.ErrDuplicateKey)

	msg := "updated"
	updated, err := repo.Update(ctx, n.NotificationID, domain.NotificationPatch{Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Message)

	_, err = repo.Delete(ctx, n.NotificationID)
	require.NoError(t, err)
	_, err = repo.Delete(ctx, n.NotificationID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
