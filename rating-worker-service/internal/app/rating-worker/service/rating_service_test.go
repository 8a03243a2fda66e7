package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/rating-worker-service/internal/app/rating-worker/entity"
	"staybook/rating-worker-service/internal/app/rating-worker/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTestService() (*RatingService, *mocks.MockRatingRepository, *mocks.MockHotelCache) {
	repo := new(mocks.MockRatingRepository)
	cache := new(mocks.MockHotelCache)
	svc := NewRatingService(repo, cache)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, cache
}

func newEvent(eventType string, hotelID uuid.UUID, rating float64) *entity.ReviewEvent {
	return &entity.ReviewEvent{
		EventType: eventType,
		ReviewID:  "review-1",
		HotelID:   hotelID.String(),
		UserID:    "user-1",
		Rating:    rating,
		Timestamp: fixedNow.Add(-time.Minute),
	}
}

// ===== ProcessReviewEvent Tests =====

func TestProcessReviewEvent_CreatedSavesScore(t *testing.T) {
	// Arrange
	svc, repo, cache := setupTestService()
	ctx := context.Background()
	hotelID := uuid.New()

	repo.On("SaveScore", ctx, mock.MatchedBy(func(s *entity.HotelReviewScore) bool {
		return s.HotelID == hotelID &&
			s.UserID == "user-1" &&
			s.ReviewID == "review-1" &&
			s.Rating == 4.5 &&
			s.UpdatedAt.Equal(fixedNow.Add(-time.Minute))
	})).Return(nil)
	cache.On("Invalidate", ctx, hotelID).Return(nil)

	// Act
	err := svc.ProcessReviewEvent(ctx, newEvent(entity.EventReviewCreated, hotelID, 4.5))

	// Assert
	require.NoError(t, err)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProcessReviewEvent_UpdatedWithoutTimestamp(t *testing.T) {
	svc, repo, cache := setupTestService()
	ctx := context.Background()
	hotelID := uuid.New()
	event := newEvent(entity.EventReviewUpdated, hotelID, 3)
	event.Timestamp = time.Time{}

	repo.On("SaveScore", ctx, mock.MatchedBy(func(s *entity.HotelReviewScore) bool {
		return s.UpdatedAt.Equal(fixedNow) && s.Rating == 3
	})).Return(nil)
	cache.On("Invalidate", ctx, hotelID).Return(nil)

	require.NoError(t, svc.ProcessReviewEvent(ctx, event))
	repo.AssertExpectations(t)
}

func TestProcessReviewEvent_DeletedRemovesScore(t *testing.T) {
	svc, repo, cache := setupTestService()
	ctx := context.Background()
	hotelID := uuid.New()

	repo.On("DeleteScore", ctx, hotelID, "user-1").Return(nil)
	cache.On("Invalidate", ctx, hotelID).Return(nil)

	err := svc.ProcessReviewEvent(ctx, newEvent(entity.EventReviewDeleted, hotelID, 0))

	require.NoError(t, err)
	repo.AssertNotCalled(t, "SaveScore", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestProcessReviewEvent_InvalidEvents(t *testing.T) {
	hotelID := uuid.New()

	tests := []struct {
		name    string
		event   *entity.ReviewEvent
		wantErr error
	}{
		{
			name:    "malformed hotel id",
			event:   &entity.ReviewEvent{EventType: entity.EventReviewCreated, HotelID: "hotel-1", UserID: "user-1", Rating: 4},
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "empty user",
			event:   &entity.ReviewEvent{EventType: entity.EventReviewCreated, HotelID: hotelID.String(), Rating: 4},
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "rating above five",
			event:   newEvent(entity.EventReviewCreated, hotelID, 5.5),
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "negative rating",
			event:   newEvent(entity.EventReviewUpdated, hotelID, -1),
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "unknown type",
			event:   newEvent("REVIEW_ARCHIVED", hotelID, 4),
			wantErr: ErrUnknownEventType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := setupTestService()

			err := svc.ProcessReviewEvent(context.Background(), tt.event)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "SaveScore", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "DeleteScore", mock.Anything, mock.Anything, mock.Anything)
			cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
		})
	}
}

func TestProcessReviewEvent_RepositoryErrorIsReturned(t *testing.T) {
	svc, repo, cache := setupTestService()
	ctx := context.Background()
	hotelID := uuid.New()
	dbErr := errors.New("connection reset")

	repo.On("SaveScore", ctx, mock.Anything).Return(dbErr)

	err := svc.ProcessReviewEvent(ctx, newEvent(entity.EventReviewCreated, hotelID, 4))

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidEvent)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestProcessReviewEvent_CacheFailureIsNotFatal(t *testing.T) {
	svc, repo, cache := setupTestService()
	ctx := context.Background()
	hotelID := uuid.New()

	repo.On("SaveScore", ctx, mock.Anything).Return(nil)
	cache.On("Invalidate", ctx, hotelID).Return(errors.New("redis down"))

	err := svc.ProcessReviewEvent(ctx, newEvent(entity.EventReviewCreated, hotelID, 4))

	assert.NoError(t, err)
}

// ===== ReconcileAll Tests =====

func TestReconcileAll_Success(t *testing.T) {
	svc, repo, cache := setupTestService()
	ctx := context.Background()

	repo.On("RecalculateAll", ctx).Return(int64(12), nil)
	cache.On("InvalidateAll", ctx).Return(4, nil)

	require.NoError(t, svc.ReconcileAll(ctx))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestReconcileAll_RepositoryError(t *testing.T) {
	svc, repo, cache := setupTestService()
	ctx := context.Background()

	repo.On("RecalculateAll", ctx).Return(int64(0), errors.New("timeout"))

	err := svc.ReconcileAll(ctx)

	assert.Error(t, err)
	cache.AssertNotCalled(t, "InvalidateAll", mock.Anything)
}

func TestReconcileAll_CacheFailureIsNotFatal(t *testing.T) {
	svc, repo, cache := setupTestService()
	ctx := context.Background()

	repo.On("RecalculateAll", ctx).Return(int64(3), nil)
	cache.On("InvalidateAll", ctx).Return(1, errors.New("redis down"))

	assert.NoError(t, svc.ReconcileAll(ctx))
}
