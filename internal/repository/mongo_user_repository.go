package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/user-notification-service/internal/domain"
)

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository returns a document-store implementation backed by the users collection.
// Uniqueness of userId and email relies on the indexes created by persistence.EnsureIndexes.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection(UsersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	return mapMongoError(err)
}

func (r *mongoUserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return r.GetByID(ctx, userID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user domain.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"userId": userID}, bson.M{"$set": fields}, opts).Decode(&user)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &user, nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, ErrNotFound
	}
	return res.DeletedCount, nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapMongoError(err)
	}
	return &user, nil
}

func mapMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	}
	return err
}
