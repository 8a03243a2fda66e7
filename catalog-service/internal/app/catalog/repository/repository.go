package repository

import (
	"context"
	"errors"

	"staybook/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

const serviceName = "catalog-service"

var (
	ErrHotelNotFound = errors.New("hotel not found")
	ErrRoomNotFound  = errors.New("room not found")
)

type HotelRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.HotelDetails, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter entity.HotelFilter) ([]entity.Hotel, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	ListByHotel(ctx context.Context, hotelID uuid.UUID, filter entity.RoomFilter) ([]entity.Room, error)
}
