package mocks

import (
	"context"

	"staybook/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockHotelRepository мок для HotelRepository
type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.HotelDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.HotelDetails), args.Error(1)
}

func (m *MockHotelRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHotelRepository) List(ctx context.Context, filter entity.HotelFilter) ([]entity.Hotel, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Hotel), args.Error(1)
}

// MockRoomRepository мок для RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Room), args.Error(1)
}

func (m *MockRoomRepository) ListByHotel(ctx context.Context, hotelID uuid.UUID, filter entity.RoomFilter) ([]entity.Room, error) {
	args := m.Called(ctx, hotelID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Room), args.Error(1)
}

// MockCatalogCache мок для кеша карточек
type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) GetHotel(ctx context.Context, id uuid.UUID) (*entity.HotelDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.HotelDetails), args.Error(1)
}

func (m *MockCatalogCache) SetHotel(ctx context.Context, hotel *entity.HotelDetails) error {
	args := m.Called(ctx, hotel)
	return args.Error(0)
}

func (m *MockCatalogCache) GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Room), args.Error(1)
}

func (m *MockCatalogCache) SetRoom(ctx context.Context, room *entity.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
