package entity

import (
	"time"
)

// User - гость с балансом баллов лояльности
// ID совпадает с subject из токена провайдера идентификации
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	RewardPoints int64     `json:"reward_points" bson:"reward_points"` // Никогда не бывает отрицательным
	Version      int64     `json:"-" bson:"version"`                   // Токен для compare-and-swap баланса
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// ReservationStatus - явное состояние бронирования
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

type Payment struct {
	PointsUsed int64         `json:"points_used" bson:"points_used"`
	Method     string        `json:"method" bson:"method"`
	Status     PaymentStatus `json:"status" bson:"status"`
}

type Reservation struct {
	ID               string            `json:"id" bson:"_id"`
	UserID           string            `json:"user_id" bson:"user_id"`
	HotelID          string            `json:"hotel_id" bson:"hotel_id"`
	RoomID           string            `json:"room_id" bson:"room_id"`
	CheckIn          time.Time         `json:"check_in" bson:"check_in"`
	CheckOut         time.Time         `json:"check_out" bson:"check_out"`
	Nights           int               `json:"nights" bson:"nights"`
	TotalPrice       float64           `json:"total_price" bson:"total_price"`
	PointsDelta      int64             `json:"points_delta" bson:"points_delta"` // Сколько баллов начислено при создании
	BookingDate      time.Time         `json:"booking_date" bson:"booking_date"`
	Payment          Payment           `json:"payment" bson:"payment"`
	Status           ReservationStatus `json:"status" bson:"status"`
	CancellationDate *time.Time        `json:"cancellation_date,omitempty" bson:"cancellation_date,omitempty"`
	PenaltyFee       float64           `json:"penalty_fee,omitempty" bson:"penalty_fee,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at" bson:"updated_at"`
}

func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}

// Review - не больше одного на пару (UserID, HotelID)
type Review struct {
	ID         string    `json:"id" bson:"_id"`
	HotelID    string    `json:"hotel_id" bson:"hotel_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Contents   string    `json:"contents" bson:"contents"`
	Rating     float64   `json:"rating" bson:"rating"` // 0..5
	ReviewDate time.Time `json:"review_date" bson:"review_date"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// CancellationPolicy приходит из каталога вместе с номером
type CancellationPolicy struct {
	Allowed    bool    `json:"allowed"`
	PenaltyFee float64 `json:"penalty_fee"`
}

// Room - снимок номера из Catalog Service, только чтение
type Room struct {
	ID                 string             `json:"id"`
	HotelID            string             `json:"hotel_id"`
	Name               string             `json:"name"`
	RoomType           string             `json:"room_type"`
	PricePerNight      float64            `json:"price_per_night"`
	CleaningFee        float64            `json:"cleaning_fee"`
	ServiceFee         float64            `json:"service_fee"`
	TaxRate            float64            `json:"tax_rate"`
	Beds               int                `json:"beds"`
	Baths              int                `json:"baths"`
	Guests             int                `json:"guests"`
	Amenities          []string           `json:"amenities"`
	ImageURLs          []string           `json:"image_urls"`
	CancellationPolicy CancellationPolicy `json:"cancellation_policy"`
}

// Hotel - снимок отеля из Catalog Service
type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	ImageURLs   []string `json:"image_urls"`
}

// ReservationEvent публикуется в топик reservation_events
type ReservationEvent struct {
	EventType     string            `json:"event_type"` // RESERVATION_CREATED, RESERVATION_CANCELLED, RESERVATION_MODIFIED
	ReservationID string            `json:"reservation_id"`
	UserID        string            `json:"user_id"`
	HotelID       string            `json:"hotel_id"`
	RoomID        string            `json:"room_id"`
	CheckIn       time.Time         `json:"check_in"`
	CheckOut      time.Time         `json:"check_out"`
	TotalPrice    float64           `json:"total_price"`
	PointsDelta   int64             `json:"points_delta"`
	PenaltyFee    float64           `json:"penalty_fee,omitempty"`
	Status        ReservationStatus `json:"status"`
	Timestamp     time.Time         `json:"timestamp"`
}

// ReviewEvent читает rating-worker
type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED, REVIEW_UPDATED, REVIEW_DELETED
	ReviewID  string    `json:"review_id"`
	HotelID   string    `json:"hotel_id"`
	UserID    string    `json:"user_id"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventReservationCreated   = "RESERVATION_CREATED"
	EventReservationCancelled = "RESERVATION_CANCELLED"
	EventReservationModified  = "RESERVATION_MODIFIED"

	EventReviewCreated = "REVIEW_CREATED"
	EventReviewUpdated = "REVIEW_UPDATED"
	EventReviewDeleted = "REVIEW_DELETED"
)
