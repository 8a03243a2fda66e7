package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/pkg/logger"
	"staybook/pkg/metrics"
	"staybook/rating-worker-service/internal/app/rating-worker/entity"
	"staybook/rating-worker-service/internal/app/rating-worker/repository"

	"github.com/google/uuid"
)

var (
	// ErrInvalidEvent и ErrUnknownEventType не лечатся повтором
	ErrInvalidEvent     = errors.New("invalid review event")
	ErrUnknownEventType = errors.New("unknown review event type")
)

const (
	sourceEvent = "event"
	sourceCron  = "cron"
)

// RatingService поддерживает hotels.rating и hotels.review_count
type RatingService struct {
	repo  repository.RatingRepository
	cache repository.HotelCache
	now   func() time.Time
}

func NewRatingService(repo repository.RatingRepository, cache repository.HotelCache) *RatingService {
	return &RatingService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

func (s *RatingService) ProcessReviewEvent(ctx context.Context, event *entity.ReviewEvent) error {
	start := s.now()
	defer func() {
		metrics.WorkerProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	hotelID, err := uuid.Parse(event.HotelID)
	if err != nil {
		return fmt.Errorf("%w: hotel_id %q", ErrInvalidEvent, event.HotelID)
	}
	if event.UserID == "" {
		return fmt.Errorf("%w: empty user_id", ErrInvalidEvent)
	}

	switch event.EventType {
	case entity.EventReviewCreated, entity.EventReviewUpdated:
		if event.Rating < 0 || event.Rating > 5 {
			return fmt.Errorf("%w: rating %v out of range", ErrInvalidEvent, event.Rating)
		}
		updatedAt := event.Timestamp
		if updatedAt.IsZero() {
			updatedAt = s.now().UTC()
		}
		err = s.repo.SaveScore(ctx, &entity.HotelReviewScore{
			HotelID:   hotelID,
			UserID:    event.UserID,
			ReviewID:  event.ReviewID,
			Rating:    event.Rating,
			UpdatedAt: updatedAt,
		})
	case entity.EventReviewDeleted:
		err = s.repo.DeleteScore(ctx, hotelID, event.UserID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, event.EventType)
	}

	if err != nil {
		metrics.WorkerRatingUpdates.WithLabelValues(sourceEvent, "error").Inc()
		return fmt.Errorf("failed to apply %s: %w", event.EventType, err)
	}
	metrics.WorkerRatingUpdates.WithLabelValues(sourceEvent, "success").Inc()

	if err := s.cache.Invalidate(ctx, hotelID); err != nil {
		logger.Warn().Err(err).Str("hotel_id", event.HotelID).Msg("Failed to invalidate hotel cache")
	}

	logger.Info().
		Str("event_type", event.EventType).
		Str("hotel_id", event.HotelID).
		Str("review_id", event.ReviewID).
		Msg("Hotel rating recalculated")

	return nil
}

// ReconcileAll чинит агрегаты, если события терялись или обрабатывались вне порядка
func (s *RatingService) ReconcileAll(ctx context.Context) error {
	updated, err := s.repo.RecalculateAll(ctx)
	if err != nil {
		metrics.WorkerRatingUpdates.WithLabelValues(sourceCron, "error").Inc()
		return fmt.Errorf("failed to reconcile ratings: %w", err)
	}
	metrics.WorkerRatingUpdates.WithLabelValues(sourceCron, "success").Inc()

	invalidated, err := s.cache.InvalidateAll(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate hotel cache")
	}

	logger.Info().
		Int64("hotels", updated).
		Int("cache_keys", invalidated).
		Msg("Hotel ratings reconciled")

	return nil
}
