package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventReviewCreated = "REVIEW_CREATED"
	EventReviewUpdated = "REVIEW_UPDATED"
	EventReviewDeleted = "REVIEW_DELETED"
)

// ReviewEvent публикует Booking Service в топик review_events, ключ сообщения - hotel_id
type ReviewEvent struct {
	EventType string    `json:"event_type"`
	ReviewID  string    `json:"review_id"`
	HotelID   string    `json:"hotel_id"`
	UserID    string    `json:"user_id"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// HotelReviewScore - последняя оценка пользователя для отеля
// По ним считаются hotels.rating и hotels.review_count
type HotelReviewScore struct {
	HotelID   uuid.UUID `json:"hotel_id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(128);primaryKey"`
	ReviewID  string    `json:"review_id" gorm:"type:varchar(64);not null"`
	Rating    float64   `json:"rating" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HotelReviewScore) TableName() string {
	return "hotel_review_scores"
}
