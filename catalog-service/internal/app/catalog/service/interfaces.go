package service

import (
	"context"

	"staybook/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

type CatalogServiceInterface interface {
	ListHotels(ctx context.Context, filter entity.HotelFilter) ([]entity.Hotel, error)
	GetHotel(ctx context.Context, id uuid.UUID) (*entity.HotelDetails, error)
	ListRooms(ctx context.Context, hotelID uuid.UUID, filter entity.RoomFilter) ([]entity.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	GetHotelRoom(ctx context.Context, hotelID, roomID uuid.UUID) (*entity.Room, error)
}
