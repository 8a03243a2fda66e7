package repository

import (
	"context"
	"errors"
	"testing"

	"staybook/booking-service/internal/app/booking/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), &entity.User{ID: "user-1"})

		assert.True(t, errors.Is(err, ErrUserAlreadyExists))
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "user-1"},
			{Key: "email", Value: "guest@example.com"},
			{Key: "reward_points", Value: int64(110)},
			{Key: "version", Value: int64(2)},
		}))

		user, err := repo.GetByID(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, "guest@example.com", user.Email)
		assert.Equal(t, int64(110), user.RewardPoints)
		assert.Equal(t, int64(2), user.Version)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "ghost")

		assert.True(t, errors.Is(err, ErrUserNotFound))
	})

	mt.Run("update points matched", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := repo.UpdatePoints(context.Background(), "user-1", 2, 0)

		assert.NoError(t, err)
	})

	mt.Run("update points stale version", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)

		err := repo.UpdatePoints(context.Background(), "user-1", 1, 110)

		assert.True(t, errors.Is(err, ErrVersionConflict))
	})

	mt.Run("update points missing user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch),
		)

		err := repo.UpdatePoints(context.Background(), "ghost", 1, 110)

		assert.True(t, errors.Is(err, ErrUserNotFound))
	})
}
