package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/daily-pulse/internal/domain"
)

// PublisherRepository manages news outlets.
type PublisherRepository interface {
	Create(ctx context.Context, publisher *domain.Publisher) error
	List(ctx context.Context) ([]domain.Publisher, error)
	IncrementTotalNews(ctx context.Context, name string) (domain.UpdateOutcome, error)
	SetTotalNews(ctx context.Context, name string, total int64) (domain.UpdateOutcome, error)
}

type publisherRepository struct {
	coll *mongo.Collection
}

// NewPublisherRepository returns a MongoDB-backed implementation.
func NewPublisherRepository(db *mongo.Database) PublisherRepository {
	return &publisherRepository{coll: db.Collection(PublishersCollection)}
}

func (r *publisherRepository) Create(ctx context.Context, publisher *domain.Publisher) error {
	if publisher.ID.IsZero() {
		publisher.ID = primitive.NewObjectID()
	}
	if publisher.CreatedAt.IsZero() {
		publisher.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, publisher)
	return mapError(err)
}

func (r *publisherRepository) List(ctx context.Context) ([]domain.Publisher, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	publishers := []domain.Publisher{}
	if err := cursor.All(ctx, &publishers); err != nil {
		return nil, err
	}
	return publishers, nil
}

func (r *publisherRepository) IncrementTotalNews(ctx context.Context, name string) (domain.UpdateOutcome, error) {
	return applyUpdate(ctx, r.coll,
		bson.D{{Key: "name", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "totalNews", Value: 1}}}})
}

func (r *publisherRepository) SetTotalNews(ctx context.Context, name string, total int64) (domain.UpdateOutcome, error) {
	return updateOne(ctx, r.coll,
		bson.D{{Key: "name", Value: name}},
		bson.D{{Key: "totalNews", Value: total}})
}
