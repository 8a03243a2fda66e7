package entity

import (
	"github.com/google/uuid"
)

// Hotel - строка таблицы hotels
// Rating и ReviewCount пересчитывает rating-worker по событиям отзывов
type Hotel struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	ImageURLs   []string  `json:"image_urls"`
}

// HotelDetails - отель вместе со списком его номеров
type HotelDetails struct {
	Hotel
	RoomIDs []uuid.UUID `json:"room_ids"`
}

// CancellationPolicy хранится в колонках cancellation_allowed и cancellation_penalty_fee
type CancellationPolicy struct {
	Allowed    bool    `json:"allowed"`
	PenaltyFee float64 `json:"penalty_fee"`
}

// Room - номер отеля. Цены и политика отмены читаются Booking Service
type Room struct {
	ID                 uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	HotelID            uuid.UUID          `json:"hotel_id" gorm:"type:uuid;not null;index"`
	Name               string             `json:"name" gorm:"not null"`
	RoomType           string             `json:"room_type" gorm:"not null"`
	PricePerNight      float64            `json:"price_per_night" gorm:"not null"`
	CleaningFee        float64            `json:"cleaning_fee"`
	ServiceFee         float64            `json:"service_fee"`
	TaxRate            float64            `json:"tax_rate"`
	Beds               int                `json:"beds"`
	Baths              int                `json:"baths"`
	Guests             int                `json:"guests"`
	Amenities          []string           `json:"amenities" gorm:"type:jsonb;serializer:json"`
	ImageURLs          []string           `json:"image_urls" gorm:"column:image_urls;type:jsonb;serializer:json"`
	CancellationPolicy CancellationPolicy `json:"cancellation_policy" gorm:"embedded;embeddedPrefix:cancellation_"`
}

func (Room) TableName() string {
	return "rooms"
}
