package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/spec-kit/user-notification-service/internal/domain"
)

func userDoc(id, email, status string) bson.D {
	return bson.D{
		{Key: "userId", Value: id},
		{Key: "name", Value: "Ada"},
		{Key: "email", Value: email},
		{Key: "password", Value: "$2a$10$hash"},
		{Key: "role", Value: "admin"},
		{Key: "status", Value: status},
	}
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test." + UsersCollection

	mt.Run("create maps duplicate key", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.users index: email_1",
		}))

		err := repo.Create(context.Background(), &domain.User{UserID: "u2", Email: "a@x.io"})
		require.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("create succeeds", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Create(context.Background(), &domain.User{UserID: "u1", Email: "a@x.io"})
		require.NoError(mt, err)
	})

	mt.Run("get by email decodes document", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, userDoc("u1", "a@x.io", "active")))

		user, err := repo.GetByEmail(context.Background(), "a@x.io")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", user.UserID)
		assert.Equal(mt, domain.UserStatusActive, user.Status)
		assert.Equal(mt, "admin", user.Role)
	})

	mt.Run("get by id maps no documents", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "missing")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list returns all documents", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			userDoc("u1", "a@x.io", "new"),
			userDoc("u2", "b@x.io", "active"),
		))

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "b@x.io", users[1].Email)
	})

	mt.Run("update returns new document", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: userDoc("u1", "a@x.io", "inactive")},
		))

		status := domain.UserStatusInactive
		user, err := repo.Update(context.Background(), "u1", domain.UserPatch{Status: &status})
		require.NoError(mt, err)
		assert.Equal(mt, domain.UserStatusInactive, user.Status)
	})

	mt.Run("update maps duplicate email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: "E11000 duplicate key error",
		}))

		email := "b@x.io"
		_, err := repo.Update(context.Background(), "u1", domain.UserPatch{Email: &email})
		require.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("delete reports missing record", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		_, err := repo.Delete(context.Background(), "missing")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete removes record", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		n, err := repo.Delete(context.Background(), "u1")
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})
}

func TestMongoNotificationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test." + NotificationsCollection

	mt.Run("create maps duplicate key", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.notifications index: notificationId_1",
		}))

		err := repo.Create(context.Background(), &domain.Notification{NotificationID: "n1"})
		require.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("get by id decodes document", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "notificationId", Value: "n1"},
			{Key: "userId", Value: "u1"},
			{Key: "message", Value: "hello"},
			{Key: "type", Value: "email"},
		}))

		n, err := repo.GetByID(context.Background(), "n1")
		require.NoError(mt, err)
		assert.Equal(mt, "hello", n.Message)
		assert.Equal(mt, "u1", n.UserID)
	})

	mt.Run("delete reports missing record", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		_, err := repo.Delete(context.Background(), "n1")
		require.ErrorIs(mt, err, ErrNotFound)
	})
}
