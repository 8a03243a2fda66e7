package service

import (
	"context"

	"staybook/booking-service/internal/app/booking/entity"
)

type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, userID string, req *entity.CreateReservationRequest) (*entity.Reservation, error)
	CancelReservation(ctx context.Context, userID, reservationID string) (float64, error)
	ModifyReservation(ctx context.Context, userID, reservationID string, req *entity.ModifyReservationRequest) (*entity.Reservation, error)
	GetReservation(ctx context.Context, userID, reservationID string) (*entity.Reservation, error)
	GetUserReservations(ctx context.Context, userID string) ([]entity.Reservation, error)
	GetReservationsByUser(ctx context.Context, userID string) ([]entity.Reservation, error)
}

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, userID, hotelID string, req *entity.ReviewRequest) (*entity.Review, error)
	UpdateReview(ctx context.Context, userID, hotelID string, req *entity.ReviewRequest) (*entity.Review, error)
	DeleteReview(ctx context.Context, userID, hotelID string) error
	GetHotelReviews(ctx context.Context, hotelID string) ([]entity.Review, error)
}

type UserServiceInterface interface {
	SignUp(ctx context.Context, userID, email string, req *entity.SignUpRequest) (*entity.User, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
}
