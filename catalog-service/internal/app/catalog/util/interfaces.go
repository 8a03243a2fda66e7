package util

import (
	"context"

	"staybook/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

// CatalogCache - кеш карточек отелей и номеров
// Get возвращает nil, nil при промахе
type CatalogCache interface {
	GetHotel(ctx context.Context, id uuid.UUID) (*entity.HotelDetails, error)
	SetHotel(ctx context.Context, hotel *entity.HotelDetails) error
	GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	SetRoom(ctx context.Context, room *entity.Room) error
}
