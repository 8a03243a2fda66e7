package mocks

import (
	"context"

	"staybook/rating-worker-service/internal/app/rating-worker/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRatingRepository мок для RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) SaveScore(ctx context.Context, score *entity.HotelReviewScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockRatingRepository) DeleteScore(ctx context.Context, hotelID uuid.UUID, userID string) error {
	args := m.Called(ctx, hotelID, userID)
	return args.Error(0)
}

func (m *MockRatingRepository) RecalculateAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockHotelCache мок для HotelCache
type MockHotelCache struct {
	mock.Mock
}

func (m *MockHotelCache) Invalidate(ctx context.Context, hotelID uuid.UUID) error {
	args := m.Called(ctx, hotelID)
	return args.Error(0)
}

func (m *MockHotelCache) InvalidateAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
