package util

import (
	"context"
	"testing"
	"time"

	"staybook/catalog-service/internal/app/catalog/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type RedisCacheTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	cache *RedisClient
	ctx   context.Context
}

func (s *RedisCacheTestSuite) SetupSuite() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.cache, err = NewRedisClient(mr.Addr(), "", 0, 5*time.Minute)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *RedisCacheTestSuite) SetupTest() {
	s.mr.FlushAll()
}

func (s *RedisCacheTestSuite) TearDownSuite() {
	s.cache.Close()
	s.mr.Close()
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheTestSuite))
}

// ===== Hotel Tests =====

func (s *RedisCacheTestSuite) TestHotel_Miss() {
	hotel, err := s.cache.GetHotel(s.ctx, uuid.New())

	s.NoError(err)
	s.Nil(hotel)
}

func (s *RedisCacheTestSuite) TestHotel_SetThenGet() {
	// Arrange
	roomID := uuid.New()
	hotel := &entity.HotelDetails{
		Hotel: entity.Hotel{
			ID:          uuid.New(),
			Name:        "Sea View",
			City:        "Sochi",
			Rating:      4.5,
			ReviewCount: 12,
			ImageURLs:   []string{"https://img/1.jpg"},
		},
		RoomIDs: []uuid.UUID{roomID},
	}

	// Act
	s.Require().NoError(s.cache.SetHotel(s.ctx, hotel))
	cached, err := s.cache.GetHotel(s.ctx, hotel.ID)

	// Assert
	s.NoError(err)
	s.Require().NotNil(cached)
	s.Equal(hotel.Name, cached.Name)
	s.Equal(12, cached.ReviewCount)
	s.Equal([]uuid.UUID{roomID}, cached.RoomIDs)
	s.True(s.mr.Exists("catalog:hotel:" + hotel.ID.String()))
}

func (s *RedisCacheTestSuite) TestHotel_Expires() {
	hotel := &entity.HotelDetails{Hotel: entity.Hotel{ID: uuid.New(), Name: "Sea View"}}
	s.Require().NoError(s.cache.SetHotel(s.ctx, hotel))

	s.mr.FastForward(6 * time.Minute)

	cached, err := s.cache.GetHotel(s.ctx, hotel.ID)
	s.NoError(err)
	s.Nil(cached)
}

func (s *RedisCacheTestSuite) TestHotel_CorruptedValue() {
	id := uuid.New()
	s.Require().NoError(s.mr.Set("catalog:hotel:"+id.String(), "{not json"))

	cached, err := s.cache.GetHotel(s.ctx, id)

	s.Error(err)
	s.Nil(cached)
}

// ===== Room Tests =====

func (s *RedisCacheTestSuite) TestRoom_SetThenGet() {
	room := &entity.Room{
		ID:            uuid.New(),
		HotelID:       uuid.New(),
		Name:          "Deluxe 101",
		RoomType:      "deluxe",
		PricePerNight: 100,
		TaxRate:       0.1,
		Amenities:     []string{"wifi", "minibar"},
		CancellationPolicy: entity.CancellationPolicy{
			Allowed:    true,
			PenaltyFee: 20,
		},
	}

	s.Require().NoError(s.cache.SetRoom(s.ctx, room))
	cached, err := s.cache.GetRoom(s.ctx, room.ID)

	s.NoError(err)
	s.Require().NotNil(cached)
	s.Equal(*room, *cached)
	s.Equal(5*time.Minute, s.mr.TTL("catalog:room:"+room.ID.String()))
}

func (s *RedisCacheTestSuite) TestRoom_KeysDoNotCollideWithHotels() {
	id := uuid.New()
	s.Require().NoError(s.cache.SetHotel(s.ctx, &entity.HotelDetails{Hotel: entity.Hotel{ID: id}}))

	room, err := s.cache.GetRoom(s.ctx, id)

	s.NoError(err)
	s.Nil(room)
}
