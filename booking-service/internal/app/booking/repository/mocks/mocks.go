package mocks

import (
	"context"

	"staybook/booking-service/internal/app/booking/entity"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository мок для UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Копия, чтобы сервис не менял объект, который тест передал в Return
	user := *args.Get(0).(*entity.User)
	return &user, args.Error(1)
}

func (m *MockUserRepository) UpdatePoints(ctx context.Context, id string, expectedVersion int64, points int64) error {
	args := m.Called(ctx, id, expectedVersion, points)
	return args.Error(0)
}

// MockReservationRepository мок для ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	reservation := *args.Get(0).(*entity.Reservation)
	return &reservation, args.Error(1)
}

func (m *MockReservationRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByUserAndHotel(ctx context.Context, userID, hotelID string) ([]entity.Reservation, error) {
	args := m.Called(ctx, userID, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByUserAndHotel(ctx context.Context, userID, hotelID string) (*entity.Review, error) {
	args := m.Called(ctx, userID, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByHotelID(ctx context.Context, hotelID string) ([]entity.Review, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTxManager выполняет fn сразу, без транзакции
// Если задан Err, fn не вызывается
type MockTxManager struct {
	Calls int
	Err   error
}

func (m *MockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

// MockCatalogClient мок для CatalogClient
type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) GetRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Room), args.Error(1)
}

func (m *MockCatalogClient) GetHotel(ctx context.Context, hotelID string) (*entity.Hotel, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Hotel), args.Error(1)
}

// MockLocker считает захваты и освобождения
type MockLocker struct {
	Err      error
	Keys     []string
	Released int
}

func (m *MockLocker) Lock(ctx context.Context, key string) (func(), error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Keys = append(m.Keys, key)
	return func() { m.Released++ }, nil
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
