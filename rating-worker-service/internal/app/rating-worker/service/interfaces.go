package service

import (
	"context"

	"staybook/rating-worker-service/internal/app/rating-worker/entity"
)

type RatingServiceInterface interface {
	// ProcessReviewEvent применяет событие отзыва к агрегату отеля
	ProcessReviewEvent(ctx context.Context, event *entity.ReviewEvent) error
	// ReconcileAll пересчитывает рейтинги всех отелей
	ReconcileAll(ctx context.Context) error
}
