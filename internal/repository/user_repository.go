package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/daily-pulse/internal/domain"
)

// UserRepository defines persistence access for reader accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	CountPremium(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role domain.UserRole) (domain.UpdateOutcome, error)
	SetPremium(ctx context.Context, email string) (domain.UpdateOutcome, error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a MongoDB-backed implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(UsersCollection)}
}

// Create inserts the user. Email uniqueness is enforced by the unique index,
// so a concurrent duplicate surfaces as ErrDuplicateKey.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, user)
	return mapError(err)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

func (r *userRepository) CountPremium(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{{Key: "isPremium", Value: true}})
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *userRepository) SetRole(ctx context.Context, id primitive.ObjectID, role domain.UserRole) (domain.UpdateOutcome, error) {
	return updateOne(ctx, r.coll, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "role", Value: role}})
}

func (r *userRepository) SetPremium(ctx context.Context, email string) (domain.UpdateOutcome, error) {
	return updateOne(ctx, r.coll, bson.D{{Key: "email", Value: email}}, bson.D{{Key: "isPremium", Value: true}})
}

func updateOne(ctx context.Context, coll *mongo.Collection, filter, set bson.D) (domain.UpdateOutcome, error) {
	return applyUpdate(ctx, coll, filter, bson.D{{Key: "$set", Value: set}})
}

func applyUpdate(ctx context.Context, coll *mongo.Collection, filter, update bson.D) (domain.UpdateOutcome, error) {
	res, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return domain.UpdateOutcome{}, err
	}
	return domain.UpdateOutcome{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}
