package repository

import (
	"context"
	"errors"

	"staybook/booking-service/internal/app/booking/entity"
)

var (
	// Ошибки репозиториев для обработки в service layer
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists")

	// ErrVersionConflict - документ изменен другим запросом между чтением и записью
	ErrVersionConflict = errors.New("version conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// UpdatePoints записывает баланс, только если version в базе равен expectedVersion
	UpdatePoints(ctx context.Context, id string, expectedVersion int64, points int64) error
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Reservation, error)
	GetByUserAndHotel(ctx context.Context, userID, hotelID string) ([]entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByUserAndHotel(ctx context.Context, userID, hotelID string) (*entity.Review, error)
	GetByHotelID(ctx context.Context, hotelID string) ([]entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
}

// TxManager выполняет fn в одной транзакции хранилища
// Все репозитории, вызванные с переданным ctx, участвуют в этой транзакции
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
