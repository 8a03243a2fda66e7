package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository - пользователи хранятся по _id = subject токена, отдельные индексы не нужны
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{collection: db.Collection(usersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, usersCollection)
	defer timer.ObserveDuration()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		return timer.Fail(fmt.Errorf("failed to create user: %w", err))
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, usersCollection)
	defer timer.ObserveDuration()

	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, timer.Fail(fmt.Errorf("failed to get user: %w", err))
	}

	return &user, nil
}

// UpdatePoints - compare-and-swap по полю version
// Если документ есть, но версия другая, возвращается ErrVersionConflict
func (r *userRepository) UpdatePoints(ctx context.Context, id string, expectedVersion int64, points int64) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, usersCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"_id": id, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{
			"reward_points": points,
			"updated_at":    time.Now(),
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return timer.Fail(fmt.Errorf("failed to update reward points: %w", err))
	}

	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return timer.Fail(fmt.Errorf("failed to check user existence: %w", err))
		}
		if count == 0 {
			return ErrUserNotFound
		}
		return ErrVersionConflict
	}

	return nil
}
