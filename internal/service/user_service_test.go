package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/events"
	"github.com/spec-kit/daily-pulse/internal/repository"
	"github.com/spec-kit/daily-pulse/internal/repository/memory"
)

type failingCounts struct {
	repository.UserRepository
}

func (failingCounts) Count(context.Context) (int64, error)        { return 4, nil }
func (failingCounts) CountPremium(context.Context) (int64, error) { return 0, errors.New("boom") }

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewUserService(store.Users(), nil)

	created, err := svc.Register(ctx, &domain.User{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Register(ctx, &domain.User{Name: "Ada again", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.False(t, created)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
}

func TestUserServiceRegisterIgnoresPrivilegedFields(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewStore().Users(), nil)

	_, err := svc.Register(ctx, &domain.User{Email: "mallory@example.com", Role: domain.UserRoleAdmin, IsPremium: true})
	require.NoError(t, err)

	isAdmin, err := svc.IsAdmin(ctx, "mallory@example.com")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	user, err := svc.FindByEmail(ctx, "mallory@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsPremium)
}

func TestUserServiceStats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewUserService(store.Users(), nil)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.Register(ctx, &domain.User{Email: email})
		require.NoError(t, err)
	}
	_, err := svc.MarkPremium(ctx, "b@example.com")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStats{TotalUsers: 3, PremiumUsers: 1, NormalUsers: 2}, stats)

	_, err = NewUserService(failingCounts{}, nil).Stats(ctx)
	assert.EqualError(t, err, "boom")
}

func TestUserServicePromote(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher(zaptest.NewLogger(t))
	svc := NewUserService(store.Users(), dispatcher)

	var promoted []events.Event
	dispatcher.Subscribe(events.EventUserPromoted, func(_ context.Context, e events.Event) error {
		promoted = append(promoted, e)
		return nil
	})

	user := &domain.User{Email: "bob@example.com"}
	_, err := svc.Register(ctx, user)
	require.NoError(t, err)

	admin := &domain.Principal{Email: "root@example.com", Role: domain.UserRoleAdmin}
	out, err := svc.PromoteToAdmin(ctx, admin, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ModifiedCount)

	isAdmin, err := svc.IsAdmin(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	require.Len(t, promoted, 1)
	assert.Equal(t, user.ID, promoted[0].DocumentID)
	assert.Equal(t, "root@example.com", promoted[0].Actor.Email)
	assert.NotEmpty(t, promoted[0].ID)

	out, err = svc.PromoteToAdmin(ctx, admin, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Zero(t, out.MatchedCount)
	assert.Len(t, promoted, 1)
}

func TestUserServiceFindMissing(t *testing.T) {
	svc := NewUserService(memory.NewStore().Users(), nil)

	user, err := svc.FindByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	isAdmin, err := svc.IsAdmin(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestUserServiceRegisterWithoutUniqueIndex(t *testing.T) {
	const ns = "theDailyPulse.users"
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("second registration finds the stored email", func(mt *mtest.T) {
		svc := NewUserService(repository.NewUserRepository(mt.DB), nil)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "email", Value: "ada@example.com"},
			}),
		)

		first, err := svc.Register(ctx, &domain.User{Name: "Ada", Email: "ada@example.com"})
		require.NoError(mt, err)
		assert.True(mt, first)

		second, err := svc.Register(ctx, &domain.User{Name: "Ada", Email: "ada@example.com"})
		require.NoError(mt, err)
		assert.False(mt, second)
	})

	mt.Run("concurrent insert rejected by the index reports existing", func(mt *mtest.T) {
		svc := NewUserService(repository.NewUserRepository(mt.DB), nil)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
		)

		created, err := svc.Register(ctx, &domain.User{Email: "ada@example.com"})
		require.NoError(mt, err)
		assert.False(mt, created)
	})

	mt.Run("lookup failure is returned", func(mt *mtest.T) {
		svc := NewUserService(repository.NewUserRepository(mt.DB), nil)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		_, err := svc.Register(ctx, &domain.User{Email: "ada@example.com"})
		assert.Error(mt, err)
	})
}
