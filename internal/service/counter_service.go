package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/daily-pulse/internal/events"
	"github.com/spec-kit/daily-pulse/internal/repository"
)

// CounterService maintains denormalized counters (article views, publisher
// article totals) in response to article events.
type CounterService struct {
	dispatcher events.Dispatcher
	news       repository.NewsRepository
	publishers repository.PublisherRepository
	logger     *zap.Logger
}

// NewCounterService creates the service.
func NewCounterService(dispatcher events.Dispatcher, news repository.NewsRepository, publishers repository.PublisherRepository, logger *zap.Logger) *CounterService {
	return &CounterService{
		dispatcher: dispatcher,
		news:       news,
		publishers: publishers,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (s *CounterService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventArticleCreated, s.handleArticleCreated)
	s.dispatcher.Subscribe(events.EventArticleViewed, s.handleArticleViewed)
}

func (s *CounterService) handleArticleCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ArticleCreatedPayload)
	if !ok || payload.Publisher == "" {
		return nil
	}
	out, err := s.publishers.IncrementTotalNews(ctx, payload.Publisher)
	if err != nil {
		return fmt.Errorf("increment publisher total: %w", err)
	}
	if out.MatchedCount == 0 {
		s.logger.Debug("article publisher not registered", zap.String("publisher", payload.Publisher))
	}
	return nil
}

func (s *CounterService) handleArticleViewed(ctx context.Context, event events.Event) error {
	if err := s.news.IncrementViews(ctx, event.DocumentID); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// ReconcilePublisherTotals recounts each publisher's articles and rewrites
// totalNews where it drifted. It returns how many publishers were corrected.
func (s *CounterService) ReconcilePublisherTotals(ctx context.Context) (int, error) {
	publishers, err := s.publishers.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list publishers: %w", err)
	}

	corrected := 0
	for _, p := range publishers {
		total, err := s.news.CountByPublisher(ctx, p.Name)
		if err != nil {
			return corrected, fmt.Errorf("count articles for %q: %w", p.Name, err)
		}
		if total == p.TotalNews {
			continue
		}
		if _, err := s.publishers.SetTotalNews(ctx, p.Name, total); err != nil {
			return corrected, fmt.Errorf("set total for %q: %w", p.Name, err)
		}
		s.logger.Info("publisher total corrected",
			zap.String("publisher", p.Name),
			zap.Int64("was", p.TotalNews),
			zap.Int64("now", total))
		corrected++
	}
	return corrected, nil
}
