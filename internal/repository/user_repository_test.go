package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/spec-kit/daily-pulse/internal/domain"
)

const usersNS = "theDailyPulse.users"

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get by email decodes the stored role", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ada"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "role", Value: "admin"},
			{Key: "isPremium", Value: true},
		}))

		user, err := NewUserRepository(mt.DB).GetByEmail(ctx, "ada@example.com")

		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.True(mt, user.IsAdmin())
		assert.True(mt, user.IsPremium)
	})

	mt.Run("get by email maps no documents to ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := NewUserRepository(mt.DB).GetByEmail(ctx, "nobody@example.com")

		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("create assigns an id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		user := &domain.User{Name: "Ada", Email: "ada@example.com"}

		err := NewUserRepository(mt.DB).Create(ctx, user)

		require.NoError(mt, err)
		assert.False(mt, user.ID.IsZero())
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("create maps unique index violation to ErrDuplicateKey", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: theDailyPulse.users index: users_email_unique",
		}))

		err := NewUserRepository(mt.DB).Create(ctx, &domain.User{Email: "ada@example.com"})

		assert.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("set premium reports counts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		out, err := NewUserRepository(mt.DB).SetPremium(ctx, "ada@example.com")

		require.NoError(mt, err)
		assert.Equal(mt, domain.UpdateOutcome{MatchedCount: 1, ModifiedCount: 1}, out)
	})

	mt.Run("delete reports deleted count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		n, err := NewUserRepository(mt.DB).Delete(ctx, primitive.NewObjectID())

		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})

	mt.Run("list returns an empty slice when collection is empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		users, err := NewUserRepository(mt.DB).List(ctx)

		require.NoError(mt, err)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})
}
