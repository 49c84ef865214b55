package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/events"
	"github.com/spec-kit/daily-pulse/internal/repository"
	apperrors "github.com/spec-kit/daily-pulse/pkg/util/errorutil"
)

// DefaultSideEffectTimeout bounds detached work such as view counting.
const DefaultSideEffectTimeout = 5 * time.Second

// NewsService coordinates article workflows.
type NewsService struct {
	news              repository.NewsRepository
	dispatcher        events.Dispatcher
	sideEffectTimeout time.Duration
}

// NewNewsService constructs the service.
func NewNewsService(news repository.NewsRepository, dispatcher events.Dispatcher) *NewsService {
	return &NewsService{
		news:              news,
		dispatcher:        dispatcher,
		sideEffectTimeout: DefaultSideEffectTimeout,
	}
}

// Create stores a submitted article. New articles start Pending with no
// views and are not premium. The author email defaults to the caller.
func (s *NewsService) Create(ctx context.Context, actor *domain.Principal, article *domain.Article) error {
	article.Title = strings.TrimSpace(article.Title)
	article.Publisher = strings.TrimSpace(article.Publisher)
	article.Status = domain.ArticleStatusPending
	article.Views = 0
	article.Subscription = false
	if article.AuthorEmail == "" && actor != nil {
		article.AuthorEmail = actor.Email
	}

	if err := s.news.Create(ctx, article); err != nil {
		return err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventArticleCreated,
		DocumentID: article.ID,
		Actor:      actorOf(actor),
		Payload: events.ArticleCreatedPayload{
			Publisher: article.Publisher,
			Title:     article.Title,
		},
	})
	return nil
}

// ListAll returns every article.
func (s *NewsService) ListAll(ctx context.Context) ([]domain.Article, error) {
	return s.news.List(ctx, repository.ArticleFilter{})
}

// ListByAuthor returns the articles submitted by email.
func (s *NewsService) ListByAuthor(ctx context.Context, email string) ([]domain.Article, error) {
	return s.news.List(ctx, repository.ArticleFilter{AuthorEmail: email})
}

// ListApproved returns published articles.
func (s *NewsService) ListApproved(ctx context.Context) ([]domain.Article, error) {
	return s.news.List(ctx, repository.ArticleFilter{Status: domain.ArticleStatusApproved})
}

// ListPremium returns subscriber-only articles.
func (s *NewsService) ListPremium(ctx context.Context) ([]domain.Article, error) {
	return s.news.List(ctx, repository.ArticleFilter{SubscriptionOnly: true})
}

// SearchByTitle matches a case-insensitive substring of the title.
func (s *NewsService) SearchByTitle(ctx context.Context, text string) ([]domain.Article, error) {
	return s.news.List(ctx, repository.ArticleFilter{TitleContains: text})
}

// SearchByPublisher matches a case-insensitive substring of the publisher.
func (s *NewsService) SearchByPublisher(ctx context.Context, text string) ([]domain.Article, error) {
	return s.news.List(ctx, repository.ArticleFilter{PublisherContains: text})
}

// Trending returns the most viewed approved articles.
func (s *NewsService) Trending(ctx context.Context) ([]domain.Article, error) {
	return s.news.List(ctx, repository.ArticleFilter{
		Status:          domain.ArticleStatusApproved,
		SortByViewsDesc: true,
		Limit:           domain.TrendingLimit,
	})
}

// Get reads an article and then records the view in the background. The
// returned article does not include the view being recorded.
func (s *NewsService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Article, error) {
	article, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("article", map[string]any{"id": id.Hex()})
		}
		return nil, err
	}

	s.publishDetached(events.Event{
		Type:       events.EventArticleViewed,
		DocumentID: article.ID,
	})
	return article, nil
}

// UpdateStatus applies a moderation decision. The pseudo-status "premium"
// flags the article as subscriber-only and leaves its status untouched.
func (s *NewsService) UpdateStatus(ctx context.Context, actor *domain.Principal, id primitive.ObjectID, status domain.ArticleStatus) (domain.UpdateOutcome, error) {
	var (
		out     domain.UpdateOutcome
		err     error
		payload events.ArticleModeratedPayload
	)
	if status == domain.ArticleStatusPremium {
		out, err = s.news.MarkPremium(ctx, id)
		payload.Premium = true
	} else {
		out, err = s.news.SetStatus(ctx, id, status)
		payload.Status = status
	}
	if err != nil {
		return domain.UpdateOutcome{}, err
	}

	if out.MatchedCount > 0 {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:       events.EventArticleModerated,
			DocumentID: id,
			Actor:      actorOf(actor),
			Payload:    payload,
		})
	}
	return out, nil
}

// Update replaces the editable fields of an article.
func (s *NewsService) Update(ctx context.Context, id primitive.ObjectID, edit domain.ArticleEdit) (domain.UpdateOutcome, error) {
	return s.news.Update(ctx, id, edit)
}

// Delete removes an article.
func (s *NewsService) Delete(ctx context.Context, actor *domain.Principal, id primitive.ObjectID) (int64, error) {
	deleted, err := s.news.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:       events.EventArticleDeleted,
			DocumentID: id,
			Actor:      actorOf(actor),
		})
	}
	return deleted, nil
}

// publishDetached fires an event on its own bounded context so it neither
// delays the response nor dies with the request context.
func (s *NewsService) publishDetached(event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.sideEffectTimeout)
		defer cancel()
		publishEvent(ctx, s.dispatcher, event)
	}()
}
