package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/daily-pulse/internal/domain"
)

// ArticleFilter captures listing parameters. Zero values are ignored.
// TitleContains and PublisherContains match case-insensitively and are
// treated as literal text, not patterns.
type ArticleFilter struct {
	AuthorEmail       string
	Status            domain.ArticleStatus
	SubscriptionOnly  bool
	TitleContains     string
	PublisherContains string
	SortByViewsDesc   bool
	Limit             int64
}

// NewsRepository encapsulates article persistence.
type NewsRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	List(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Article, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.ArticleStatus) (domain.UpdateOutcome, error)
	MarkPremium(ctx context.Context, id primitive.ObjectID) (domain.UpdateOutcome, error)
	Update(ctx context.Context, id primitive.ObjectID, edit domain.ArticleEdit) (domain.UpdateOutcome, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	CountByPublisher(ctx context.Context, publisher string) (int64, error)
}

type newsRepository struct {
	coll *mongo.Collection
}

// NewNewsRepository instantiates repository.
func NewNewsRepository(db *mongo.Database) NewsRepository {
	return &newsRepository{coll: db.Collection(NewsCollection)}
}

func (r *newsRepository) Create(ctx context.Context, article *domain.Article) error {
	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	_, err := r.coll.InsertOne(ctx, article)
	return mapError(err)
}

func (r *newsRepository) List(ctx context.Context, filter ArticleFilter) ([]domain.Article, error) {
	opts := options.Find()
	if filter.SortByViewsDesc {
		opts.SetSort(bson.D{{Key: "views", Value: -1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.coll.Find(ctx, filter.query(), opts)
	if err != nil {
		return nil, err
	}
	articles := []domain.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (f ArticleFilter) query() bson.D {
	q := bson.D{}
	if f.AuthorEmail != "" {
		q = append(q, bson.E{Key: "authorEmail", Value: f.AuthorEmail})
	}
	if f.Status != "" {
		q = append(q, bson.E{Key: "status", Value: f.Status})
	}
	if f.SubscriptionOnly {
		q = append(q, bson.E{Key: "subscription", Value: true})
	}
	if f.TitleContains != "" {
		q = append(q, bson.E{Key: "title", Value: containsRegex(f.TitleContains)})
	}
	if f.PublisherContains != "" {
		q = append(q, bson.E{Key: "publisher", Value: containsRegex(f.PublisherContains)})
	}
	return q
}

func containsRegex(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}

func (r *newsRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Article, error) {
	var article domain.Article
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&article); err != nil {
		return nil, mapError(err)
	}
	return &article, nil
}

func (r *newsRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := applyUpdate(ctx, r.coll,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}})
	return err
}

func (r *newsRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.ArticleStatus) (domain.UpdateOutcome, error) {
	return updateOne(ctx, r.coll, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "status", Value: status}})
}

func (r *newsRepository) MarkPremium(ctx context.Context, id primitive.ObjectID) (domain.UpdateOutcome, error) {
	return updateOne(ctx, r.coll, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "subscription", Value: true}})
}

func (r *newsRepository) Update(ctx context.Context, id primitive.ObjectID, edit domain.ArticleEdit) (domain.UpdateOutcome, error) {
	tags := edit.Tags
	if tags == nil {
		tags = []string{}
	}
	return updateOne(ctx, r.coll, bson.D{{Key: "_id", Value: id}}, bson.D{
		{Key: "title", Value: edit.Title},
		{Key: "tags", Value: tags},
		{Key: "publisher", Value: edit.Publisher},
		{Key: "description", Value: edit.Description},
		{Key: "image", Value: edit.Image},
	})
}

func (r *newsRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *newsRepository) CountByPublisher(ctx context.Context, publisher string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{{Key: "publisher", Value: publisher}})
}
