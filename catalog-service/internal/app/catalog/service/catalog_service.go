package service

import (
	"context"
	"errors"
	"fmt"

	"staybook/catalog-service/internal/app/catalog/entity"
	"staybook/catalog-service/internal/app/catalog/repository"
	"staybook/catalog-service/internal/app/catalog/util"
	"staybook/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrHotelNotFound = errors.New("hotel not found")
	ErrRoomNotFound  = errors.New("room not found")
)

// CatalogService отдает отели и номера. Карточки по id читаются через кеш,
// списки с фильтрами всегда идут в PostgreSQL
type CatalogService struct {
	hotelRepo repository.HotelRepository
	roomRepo  repository.RoomRepository
	cache     util.CatalogCache
}

func NewCatalogService(
	hotelRepo repository.HotelRepository,
	roomRepo repository.RoomRepository,
	cache util.CatalogCache,
) *CatalogService {
	return &CatalogService{
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
		cache:     cache,
	}
}

func (s *CatalogService) ListHotels(ctx context.Context, filter entity.HotelFilter) ([]entity.Hotel, error) {
	hotels, err := s.hotelRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	return hotels, nil
}

func (s *CatalogService) GetHotel(ctx context.Context, id uuid.UUID) (*entity.HotelDetails, error) {
	if cached, err := s.cache.GetHotel(ctx, id); err != nil {
		logger.Warn().Err(err).Str("hotel_id", id.String()).Msg("Hotel cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	hotel, err := s.hotelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}

	if err := s.cache.SetHotel(ctx, hotel); err != nil {
		logger.Warn().Err(err).Str("hotel_id", id.String()).Msg("Failed to cache hotel")
	}

	return hotel, nil
}

// ListRooms возвращает ErrHotelNotFound для несуществующего отеля, а не пустой список
func (s *CatalogService) ListRooms(ctx context.Context, hotelID uuid.UUID, filter entity.RoomFilter) ([]entity.Room, error) {
	exists, err := s.hotelRepo.Exists(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to check hotel: %w", err)
	}
	if !exists {
		return nil, ErrHotelNotFound
	}

	rooms, err := s.roomRepo.ListByHotel(ctx, hotelID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *CatalogService) GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	if cached, err := s.cache.GetRoom(ctx, id); err != nil {
		logger.Warn().Err(err).Str("room_id", id.String()).Msg("Room cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if err := s.cache.SetRoom(ctx, room); err != nil {
		logger.Warn().Err(err).Str("room_id", id.String()).Msg("Failed to cache room")
	}

	return room, nil
}

// GetHotelRoom - номер из другого отеля считается ненайденным
func (s *CatalogService) GetHotelRoom(ctx context.Context, hotelID, roomID uuid.UUID) (*entity.Room, error) {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.HotelID != hotelID {
		return nil, ErrRoomNotFound
	}
	return room, nil
}
