package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/pkg/logger"
	"staybook/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	serviceName            = "booking-service"
	reservationsCollection = "reservations"
)

type reservationRepository struct {
	collection *mongo.Collection
}

// NewReservationRepository создает репозиторий и индексы user_id и (user_id, hotel_id)
func NewReservationRepository(db *mongo.Database) ReservationRepository {
	collection := db.Collection(reservationsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "check_in", Value: 1}},
			Options: options.Index().SetName("user_check_in_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "hotel_id", Value: 1}},
			Options: options.Index().SetName("user_hotel_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Индексы могли быть созданы раньше с другими опциями, работать это не мешает
		logger.Warn().Err(err).Str("collection", reservationsCollection).Msg("Failed to create indexes")
	}

	return &reservationRepository{collection: collection}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, reservationsCollection)
	defer timer.ObserveDuration()

	if _, err := r.collection.InsertOne(ctx, reservation); err != nil {
		return timer.Fail(fmt.Errorf("failed to create reservation: %w", err))
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, reservationsCollection)
	defer timer.ObserveDuration()

	var reservation entity.Reservation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReservationNotFound
		}
		return nil, timer.Fail(fmt.Errorf("failed to get reservation: %w", err))
	}

	return &reservation, nil
}

// GetByUserID - все бронирования пользователя, включая отмененные, по дате заезда
func (r *reservationRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Reservation, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *reservationRepository) GetByUserAndHotel(ctx context.Context, userID, hotelID string) ([]entity.Reservation, error) {
	return r.find(ctx, bson.M{"user_id": userID, "hotel_id": hotelID})
}

func (r *reservationRepository) find(ctx context.Context, filter bson.M) ([]entity.Reservation, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, reservationsCollection)
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, timer.Fail(fmt.Errorf("failed to find reservations: %w", err))
	}
	defer cursor.Close(ctx)

	reservations := make([]entity.Reservation, 0)
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, timer.Fail(fmt.Errorf("failed to decode reservations: %w", err))
	}

	return reservations, nil
}

// Update перезаписывает изменяемые поля: даты, статус, оплату и данные отмены
func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, reservationsCollection)
	defer timer.ObserveDuration()

	reservation.UpdatedAt = time.Now()

	set := bson.M{
		"check_in":       reservation.CheckIn,
		"check_out":      reservation.CheckOut,
		"nights":         reservation.Nights,
		"status":         reservation.Status,
		"payment.status": reservation.Payment.Status,
		"penalty_fee":    reservation.PenaltyFee,
		"updated_at":     reservation.UpdatedAt,
	}
	if reservation.CancellationDate != nil {
		set["cancellation_date"] = *reservation.CancellationDate
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": reservation.ID}, bson.M{"$set": set})
	if err != nil {
		return timer.Fail(fmt.Errorf("failed to update reservation: %w", err))
	}

	if result.MatchedCount == 0 {
		return ErrReservationNotFound
	}

	return nil
}
