package service

import (
	"context"
	"strings"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/repository"
)

// PublisherService manages news outlets.
type PublisherService struct {
	publishers repository.PublisherRepository
}

// NewPublisherService builds the service.
func NewPublisherService(publishers repository.PublisherRepository) *PublisherService {
	return &PublisherService{publishers: publishers}
}

// Create stores a publisher with a zero article count.
func (s *PublisherService) Create(ctx context.Context, publisher *domain.Publisher) error {
	publisher.Name = strings.TrimSpace(publisher.Name)
	publisher.TotalNews = 0
	return s.publishers.Create(ctx, publisher)
}

// List returns every publisher.
func (s *PublisherService) List(ctx context.Context) ([]domain.Publisher, error) {
	return s.publishers.List(ctx)
}
