package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/user-notification-service/internal/domain"
)

type mongoNotificationRepository struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepository returns a document-store implementation backed by the notifications collection.
func NewMongoNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{coll: db.Collection(NotificationsCollection)}
}

func (r *mongoNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	_, err := r.coll.InsertOne(ctx, n)
	return mapMongoError(err)
}

func (r *mongoNotificationRepository) GetByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.coll.FindOne(ctx, bson.M{"notificationId": notificationID}).Decode(&n); err != nil {
		return nil, mapMongoError(err)
	}
	return &n, nil
}

func (r *mongoNotificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	result := make([]domain.Notification, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *mongoNotificationRepository) Update(ctx context.Context, notificationID string, patch domain.NotificationPatch) (*domain.Notification, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return r.GetByID(ctx, notificationID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n domain.Notification
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"notificationId": notificationID}, bson.M{"$set": fields}, opts).Decode(&n)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &n, nil
}

func (r *mongoNotificationRepository) Delete(ctx context.Context, notificationID string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"notificationId": notificationID})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, ErrNotFound
	}
	return res.DeletedCount, nil
}
