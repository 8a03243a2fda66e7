package repository

import (
	"context"
	"fmt"

	"staybook/pkg/metrics"
	"staybook/rating-worker-service/internal/app/rating-worker/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Среднее округляется до сотых, отель без оценок получает 0
const recalculateHotelSQL = `UPDATE hotels SET
	rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM hotel_review_scores WHERE hotel_id = ?), 0),
	review_count = (SELECT COUNT(*) FROM hotel_review_scores WHERE hotel_id = ?)
WHERE id = ?`

const recalculateAllSQL = `UPDATE hotels AS h SET
	rating = COALESCE(s.avg_rating, 0),
	review_count = COALESCE(s.total, 0)
FROM hotels AS src
LEFT JOIN (
	SELECT hotel_id, ROUND(AVG(rating)::numeric, 2) AS avg_rating, COUNT(*) AS total
	FROM hotel_review_scores
	GROUP BY hotel_id
) AS s ON s.hotel_id = src.id
WHERE h.id = src.id`

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// SaveScore - повторная доставка того же события перезаписывает ту же строку
func (r *ratingRepository) SaveScore(ctx context.Context, score *entity.HotelReviewScore) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "hotel_review_scores")
	defer timer.ObserveDuration()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hotel_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"review_id", "rating", "updated_at"}),
		}).Create(score)
		if upsert.Error != nil {
			return fmt.Errorf("failed to save score: %w", upsert.Error)
		}
		return recalculateHotel(tx, score.HotelID)
	})
	metrics.RecordTransaction(serviceName, err)

	return timer.Fail(err)
}

func (r *ratingRepository) DeleteScore(ctx context.Context, hotelID uuid.UUID, userID string) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "hotel_review_scores")
	defer timer.ObserveDuration()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("hotel_id = ? AND user_id = ?", hotelID, userID).Delete(&entity.HotelReviewScore{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete score: %w", result.Error)
		}
		return recalculateHotel(tx, hotelID)
	})
	metrics.RecordTransaction(serviceName, err)

	return timer.Fail(err)
}

func (r *ratingRepository) RecalculateAll(ctx context.Context) (int64, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "hotels")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Exec(recalculateAllSQL)
	if result.Error != nil {
		return 0, timer.Fail(fmt.Errorf("failed to recalculate hotels: %w", result.Error))
	}
	return result.RowsAffected, nil
}

func recalculateHotel(tx *gorm.DB, hotelID uuid.UUID) error {
	if err := tx.Exec(recalculateHotelSQL, hotelID, hotelID, hotelID).Error; err != nil {
		return fmt.Errorf("failed to recalculate hotel %s: %w", hotelID, err)
	}
	return nil
}
