package entity

import "time"

type PaymentRequest struct {
	PointsUsed int64  `json:"points_used" validate:"gte=0"`
	Method     string `json:"method" validate:"omitempty,max=50"`
}

type CreateReservationRequest struct {
	RoomID   string         `json:"room_id" validate:"required"`
	CheckIn  time.Time      `json:"check_in" validate:"required"`
	CheckOut time.Time      `json:"check_out" validate:"required,gtfield=CheckIn"`
	Payment  PaymentRequest `json:"payment"`
}

type ModifyReservationRequest struct {
	CheckIn  time.Time `json:"check_in" validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required,gtfield=CheckIn"`
}

type ReviewRequest struct {
	Contents string  `json:"contents" validate:"required,min=1,max=5000"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
}

type SignUpRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type CancelReservationResponse struct {
	ReservationID string  `json:"reservation_id"`
	PenaltyFee    float64 `json:"penalty_fee"`
}

type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	RewardPoints int64  `json:"reward_points"`
}
