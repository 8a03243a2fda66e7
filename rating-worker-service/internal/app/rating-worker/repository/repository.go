package repository

import (
	"context"

	"staybook/rating-worker-service/internal/app/rating-worker/entity"

	"github.com/google/uuid"
)

const serviceName = "rating-worker"

// RatingRepository ведет оценки и агрегаты отелей в базе каталога
type RatingRepository interface {
	// SaveScore сохраняет оценку и пересчитывает отель в одной транзакции
	SaveScore(ctx context.Context, score *entity.HotelReviewScore) error

	// DeleteScore удаляет оценку и пересчитывает отель в одной транзакции
	DeleteScore(ctx context.Context, hotelID uuid.UUID, userID string) error

	// RecalculateAll пересчитывает все отели, возвращает число обновленных строк
	RecalculateAll(ctx context.Context) (int64, error)
}

// HotelCache - кеш карточек отелей Catalog Service
type HotelCache interface {
	Invalidate(ctx context.Context, hotelID uuid.UUID) error
	InvalidateAll(ctx context.Context) (int, error)
}
