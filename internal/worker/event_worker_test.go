package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/events"
	"github.com/spec-kit/daily-pulse/internal/repository/memory"
	"github.com/spec-kit/daily-pulse/internal/service"
)

func TestStartEventWorkers(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher(logger)

	StartEventWorkers(
		service.NewCounterService(dispatcher, store.News(), store.Publishers(), logger),
		service.NewAuditService(dispatcher, logger),
	)

	publisher := &domain.Publisher{Name: "Daily Star"}
	require.NoError(t, store.Publishers().Create(ctx, publisher))
	article := &domain.Article{Title: "Storm", Publisher: "Daily Star"}
	require.NoError(t, store.News().Create(ctx, article))

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:       events.EventArticleCreated,
		DocumentID: article.ID,
		Payload:    events.ArticleCreatedPayload{Publisher: "Daily Star", Title: "Storm"},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventArticleViewed, DocumentID: article.ID}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventArticleViewed, DocumentID: primitive.NewObjectID()}))

	publishers, err := store.Publishers().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), publishers[0].TotalNews)

	stored, err := store.News().GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Views)
}

func TestStartEventWorkersNil(t *testing.T) {
	assert.NotPanics(t, func() { StartEventWorkers(nil, nil) })
}
