package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type HotelCacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	cache  HotelCache
	ctx    context.Context
}

func (s *HotelCacheTestSuite) SetupSuite() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.cache = NewHotelCache(s.client)
	s.ctx = context.Background()
}

func (s *HotelCacheTestSuite) SetupTest() {
	s.mr.FlushAll()
}

func (s *HotelCacheTestSuite) TearDownSuite() {
	s.client.Close()
	s.mr.Close()
}

func TestHotelCacheSuite(t *testing.T) {
	suite.Run(t, new(HotelCacheTestSuite))
}

func (s *HotelCacheTestSuite) TestInvalidate_RemovesOnlyThatHotel() {
	// Arrange
	target, other := uuid.New(), uuid.New()
	s.Require().NoError(s.mr.Set("catalog:hotel:"+target.String(), "{}"))
	s.Require().NoError(s.mr.Set("catalog:hotel:"+other.String(), "{}"))

	// Act
	err := s.cache.Invalidate(s.ctx, target)

	// Assert
	s.NoError(err)
	s.False(s.mr.Exists("catalog:hotel:" + target.String()))
	s.True(s.mr.Exists("catalog:hotel:" + other.String()))
}

func (s *HotelCacheTestSuite) TestInvalidate_MissingKeyIsNotAnError() {
	s.NoError(s.cache.Invalidate(s.ctx, uuid.New()))
}

func (s *HotelCacheTestSuite) TestInvalidateAll_KeepsRoomCards() {
	for i := 0; i < 150; i++ {
		s.Require().NoError(s.mr.Set(fmt.Sprintf("catalog:hotel:%s", uuid.New()), "{}"))
	}
	roomKey := "catalog:room:" + uuid.NewString()
	s.Require().NoError(s.mr.Set(roomKey, "{}"))

	deleted, err := s.cache.InvalidateAll(s.ctx)

	s.NoError(err)
	s.Equal(150, deleted)
	s.True(s.mr.Exists(roomKey))
	s.Len(s.mr.Keys(), 1)
}
