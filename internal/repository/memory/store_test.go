package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/repository"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	require.NoError(t, users.Create(ctx, &domain.User{Email: "ada@example.com", IsPremium: true}))
	require.NoError(t, users.Create(ctx, &domain.User{Email: "bob@example.com"}))

	t.Run("duplicate email rejected", func(t *testing.T) {
		err := users.Create(ctx, &domain.User{Email: "ada@example.com"})
		assert.ErrorIs(t, err, repository.ErrDuplicateKey)
	})

	t.Run("counts", func(t *testing.T) {
		total, err := users.Count(ctx)
		require.NoError(t, err)
		premium, err := users.CountPremium(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, int64(1), premium)
	})

	t.Run("set role reports modification once", func(t *testing.T) {
		bob, err := users.GetByEmail(ctx, "bob@example.com")
		require.NoError(t, err)

		out, err := users.SetRole(ctx, bob.ID, domain.UserRoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, domain.UpdateOutcome{MatchedCount: 1, ModifiedCount: 1}, out)

		out, err = users.SetRole(ctx, bob.ID, domain.UserRoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, domain.UpdateOutcome{MatchedCount: 1}, out)
	})

	t.Run("unknown id matches nothing", func(t *testing.T) {
		out, err := users.SetRole(ctx, primitive.NewObjectID(), domain.UserRoleAdmin)
		require.NoError(t, err)
		assert.Zero(t, out.MatchedCount)

		n, err := users.Delete(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := users.List(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewsList(t *testing.T) {
	ctx := context.Background()
	news := NewStore().News()

	seed := []domain.Article{
		{Title: "Budget Talks", Publisher: "Daily Star", Status: domain.ArticleStatusApproved, Views: 3},
		{Title: "Storm warning", Publisher: "Coastal Times", Status: domain.ArticleStatusApproved, Views: 9},
		{Title: "budget leak", Publisher: "daily star", Status: domain.ArticleStatusPending, Views: 50, Subscription: true},
	}
	for i := range seed {
		require.NoError(t, news.Create(ctx, &seed[i]))
	}

	t.Run("title search is case-insensitive substring", func(t *testing.T) {
		got, err := news.List(ctx, repository.ArticleFilter{TitleContains: "BUDGET"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("publisher search", func(t *testing.T) {
		got, err := news.List(ctx, repository.ArticleFilter{PublisherContains: "star"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("approved sorted by views", func(t *testing.T) {
		got, err := news.List(ctx, repository.ArticleFilter{
			Status:          domain.ArticleStatusApproved,
			SortByViewsDesc: true,
			Limit:           1,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Storm warning", got[0].Title)
	})

	t.Run("premium only", func(t *testing.T) {
		got, err := news.List(ctx, repository.ArticleFilter{SubscriptionOnly: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "budget leak", got[0].Title)
	})

	t.Run("update replaces editable fields", func(t *testing.T) {
		out, err := news.Update(ctx, seed[0].ID, domain.ArticleEdit{Title: "Budget passed", Tags: []string{"economy"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), out.ModifiedCount)

		got, err := news.GetByID(ctx, seed[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Budget passed", got.Title)
		assert.Equal(t, []string{"economy"}, got.Tags)
		assert.Empty(t, got.Publisher)
	})
}

func TestPublishersIncrement(t *testing.T) {
	ctx := context.Background()
	publishers := NewStore().Publishers()
	require.NoError(t, publishers.Create(ctx, &domain.Publisher{Name: "Daily Star"}))

	out, err := publishers.IncrementTotalNews(ctx, "Daily Star")
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.MatchedCount)

	out, err = publishers.IncrementTotalNews(ctx, "Unknown")
	require.NoError(t, err)
	assert.Zero(t, out.MatchedCount)

	list, err := publishers.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list[0].TotalNews)
}
