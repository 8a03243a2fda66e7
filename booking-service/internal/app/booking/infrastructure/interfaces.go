package infrastructure

import (
	"context"
	"errors"

	"staybook/booking-service/internal/app/booking/entity"
)

var (
	// ErrCatalogNotFound - каталог ответил 404
	ErrCatalogNotFound = errors.New("not found in catalog")
	// ErrLockNotAcquired - блокировку держит другой запрос дольше допустимого ожидания
	ErrLockNotAcquired = errors.New("lock not acquired")
)

// MessagePublisher интерфейс для отправки сообщений в Kafka
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// CatalogClient - номера и отели из Catalog Service
type CatalogClient interface {
	GetRoom(ctx context.Context, roomID string) (*entity.Room, error)
	GetHotel(ctx context.Context, hotelID string) (*entity.Hotel, error)
}

// Locker сериализует операции по ключу между экземплярами сервиса
// Возвращенную функцию нужно вызвать для снятия блокировки
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
