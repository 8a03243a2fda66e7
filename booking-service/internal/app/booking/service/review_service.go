package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/infrastructure"
	"staybook/booking-service/internal/app/booking/repository"
	"staybook/pkg/metrics"

	"github.com/google/uuid"
)

// ReviewService - отзывы об отелях, один на пользователя и отель
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	guard      *ReviewGuard
	locker     infrastructure.Locker
	publisher  infrastructure.MessagePublisher
	now        func() time.Time
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	guard *ReviewGuard,
	locker infrastructure.Locker,
	publisher infrastructure.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		guard:      guard,
		locker:     locker,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, userID, hotelID string, req *entity.ReviewRequest) (*entity.Review, error) {
	return s.upsert(ctx, userID, hotelID, req, ReviewModeCreate)
}

func (s *ReviewService) UpdateReview(ctx context.Context, userID, hotelID string, req *entity.ReviewRequest) (*entity.Review, error) {
	return s.upsert(ctx, userID, hotelID, req, ReviewModeUpdate)
}

func (s *ReviewService) upsert(ctx context.Context, userID, hotelID string, req *entity.ReviewRequest, mode ReviewMode) (*entity.Review, error) {
	if req.Rating < 0 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidInput)
	}

	unlock, err := s.lock(ctx, userID, hotelID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.guard.Check(ctx, userID, hotelID, mode)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if mode == ReviewModeCreate {
		review := &entity.Review{
			ID:         uuid.NewString(),
			HotelID:    hotelID,
			UserID:     userID,
			Contents:   req.Contents,
			Rating:     req.Rating,
			ReviewDate: now,
			UpdatedAt:  now,
		}

		if err := s.reviewRepo.Create(ctx, review); err != nil {
			if errors.Is(err, repository.ErrReviewAlreadyExists) {
				return nil, ErrReviewAlreadyExists
			}
			return nil, fmt.Errorf("failed to create review: %w", err)
		}

		metrics.ReviewsCreated.Inc()
		metrics.ReviewsRating.Observe(review.Rating)
		s.publish(ctx, entity.EventReviewCreated, review)

		return review, nil
	}

	existing.Contents = req.Contents
	existing.Rating = req.Rating
	existing.ReviewDate = now

	if err := s.reviewRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.publish(ctx, entity.EventReviewUpdated, existing)

	return existing, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID, hotelID string) error {
	unlock, err := s.lock(ctx, userID, hotelID)
	if err != nil {
		return err
	}
	defer unlock()

	existing, err := s.guard.Check(ctx, userID, hotelID, ReviewModeDelete)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.publish(ctx, entity.EventReviewDeleted, existing)

	return nil
}

// GetHotelReviews - публичный список отзывов отеля
func (s *ReviewService) GetHotelReviews(ctx context.Context, hotelID string) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByHotelID(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) lock(ctx context.Context, userID, hotelID string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, "lock:review:"+userID+":"+hotelID)
	if err != nil {
		if errors.Is(err, infrastructure.ErrLockNotAcquired) {
			return nil, ErrConcurrentModification
		}
		return nil, fmt.Errorf("failed to lock review: %w", err)
	}
	return unlock, nil
}

func (s *ReviewService) publish(ctx context.Context, eventType string, review *entity.Review) {
	publishEvent(ctx, s.publisher, review.HotelID, entity.ReviewEvent{
		EventType: eventType,
		ReviewID:  review.ID,
		HotelID:   review.HotelID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: s.now(),
	})
}
