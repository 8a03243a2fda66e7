package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/pkg/logger"
	"staybook/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reviewsCollection = "reviews"

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает репозиторий отзывов
// Уникальный индекс (user_id, hotel_id) не дает записать второй отзыв, даже если проверка в сервисе пропущена
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection(reviewsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hotel_id", Value: 1}, {Key: "review_date", Value: -1}},
			Options: options.Index().SetName("hotel_id_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "hotel_id", Value: 1}},
			Options: options.Index().SetName("user_hotel_unique_idx").SetUnique(true),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn().Err(err).Str("collection", reviewsCollection).Msg("Failed to create indexes")
	}

	return &reviewRepository{collection: collection}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, reviewsCollection)
	defer timer.ObserveDuration()

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrReviewAlreadyExists
		}
		return timer.Fail(fmt.Errorf("failed to create review: %w", err))
	}

	return nil
}

func (r *reviewRepository) GetByUserAndHotel(ctx context.Context, userID, hotelID string) (*entity.Review, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, reviewsCollection)
	defer timer.ObserveDuration()

	var review entity.Review
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "hotel_id": hotelID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, timer.Fail(fmt.Errorf("failed to get review: %w", err))
	}

	return &review, nil
}

// GetByHotelID - отзывы отеля, новые первыми
func (r *reviewRepository) GetByHotelID(ctx context.Context, hotelID string) ([]entity.Review, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, reviewsCollection)
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "review_date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"hotel_id": hotelID}, opts)
	if err != nil {
		return nil, timer.Fail(fmt.Errorf("failed to find reviews: %w", err))
	}
	defer cursor.Close(ctx)

	reviews := make([]entity.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, timer.Fail(fmt.Errorf("failed to decode reviews: %w", err))
	}

	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, reviewsCollection)
	defer timer.ObserveDuration()

	review.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"contents":    review.Contents,
			"rating":      review.Rating,
			"review_date": review.ReviewDate,
			"updated_at":  review.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": review.ID}, update)
	if err != nil {
		return timer.Fail(fmt.Errorf("failed to update review: %w", err))
	}

	if result.MatchedCount == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, reviewsCollection)
	defer timer.ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return timer.Fail(fmt.Errorf("failed to delete review: %w", err))
	}

	if result.DeletedCount == 0 {
		return ErrReviewNotFound
	}

	return nil
}
