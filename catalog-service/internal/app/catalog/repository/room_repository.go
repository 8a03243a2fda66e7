package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staybook/catalog-service/internal/app/catalog/entity"
	"staybook/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "rooms")
	defer timer.ObserveDuration()

	var room entity.Room
	result := r.db.WithContext(ctx).Where("id = ?", id).Take(&room)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, timer.Fail(fmt.Errorf("failed to get room: %w", result.Error))
	}

	return &room, nil
}

// ListByHotel - номера отеля с фильтрами, по умолчанию по имени
func (r *roomRepository) ListByHotel(ctx context.Context, hotelID uuid.UUID, filter entity.RoomFilter) ([]entity.Room, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "rooms")
	defer timer.ObserveDuration()

	query := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID)

	if roomType := strings.TrimSpace(filter.RoomType); roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price_per_night <= ?", filter.MaxPrice)
	}
	if filter.MinGuests > 0 {
		query = query.Where("guests >= ?", filter.MinGuests)
	}

	if filter.Sort == entity.RoomSortPrice {
		query = query.Order("price_per_night ASC")
	}
	query = query.Order("name ASC")

	rooms := make([]entity.Room, 0)
	if err := query.Find(&rooms).Error; err != nil {
		return nil, timer.Fail(fmt.Errorf("failed to list rooms: %w", err))
	}

	return rooms, nil
}
