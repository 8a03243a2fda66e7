package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/infrastructure"
	"staybook/booking-service/internal/app/booking/repository"
	"staybook/pkg/metrics"

	"github.com/google/uuid"
)

// ReservationOptions - настройки движка из конфигурации
type ReservationOptions struct {
	MaxRetries     int
	ReversalPolicy ReversalPolicy
}

// ReservationService управляет жизненным циклом бронирования: active -> cancelled, active -> active (новые даты)
// Каждая операция держит блокировку пользователя, запись бронирования и баланса идет одной транзакцией
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	userRepo        repository.UserRepository
	txManager       repository.TxManager
	ledger          *LoyaltyLedger
	catalog         infrastructure.CatalogClient
	locker          infrastructure.Locker
	publisher       infrastructure.MessagePublisher
	maxRetries      int
	now             func() time.Time
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	userRepo repository.UserRepository,
	txManager repository.TxManager,
	catalog infrastructure.CatalogClient,
	locker infrastructure.Locker,
	publisher infrastructure.MessagePublisher,
	opts ReservationOptions,
) *ReservationService {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &ReservationService{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		ledger:          NewLoyaltyLedger(userRepo, opts.ReversalPolicy),
		catalog:         catalog,
		locker:          locker,
		publisher:       publisher,
		maxRetries:      opts.MaxRetries,
		now:             time.Now,
	}
}

// CreateReservation
// 1. Проверяет даты
// 2. Берет номер из каталога (цена и политика отмены только оттуда)
// 3. Проверяет пересечение с активными бронированиями пользователя
// 4. Считает цену и изменение баланса баллов
// 5. В одной транзакции сохраняет бронирование и новый баланс
func (s *ReservationService) CreateReservation(ctx context.Context, userID string, req *entity.CreateReservationRequest) (*entity.Reservation, error) {
	now := s.now()

	if err := ValidateDateRange(req.CheckIn, req.CheckOut, now); err != nil {
		return nil, s.reject("create", err)
	}
	if req.Payment.PointsUsed < 0 {
		return nil, s.reject("create", fmt.Errorf("%w: points used must be non-negative", ErrInvalidInput))
	}

	unlock, err := s.lockUser(ctx, userID)
	if err != nil {
		return nil, s.reject("create", err)
	}
	defer unlock()

	room, err := s.catalog.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, infrastructure.ErrCatalogNotFound) {
			return nil, s.reject("create", ErrRoomNotFound)
		}
		return nil, fmt.Errorf("failed to get room from catalog: %w", err)
	}

	var reservation *entity.Reservation

	err = s.withRetry(ctx, func(ctx context.Context) error {
		user, err := s.getUser(ctx, userID)
		if err != nil {
			return err
		}

		existing, err := s.reservationRepo.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user reservations: %w", err)
		}
		if conflict := FindConflict(existing, req.CheckIn, req.CheckOut, ""); conflict != nil {
			return fmt.Errorf("%w: %s", ErrReservationConflict, conflict.ID)
		}

		nights := NightsBetween(req.CheckIn, req.CheckOut)
		total, err := CalculateTotalPrice(PriceInput{
			NightlyRate: room.PricePerNight,
			CleaningFee: room.CleaningFee,
			ServiceFee:  room.ServiceFee,
			TaxRate:     room.TaxRate,
			Nights:      nights,
		})
		if err != nil {
			return err
		}

		delta, err := PointsForBooking(total, req.Payment.PointsUsed)
		if err != nil {
			return err
		}

		totalPrice, _ := total.Float64()
		candidate := &entity.Reservation{
			ID:          uuid.NewString(),
			UserID:      userID,
			HotelID:     room.HotelID,
			RoomID:      room.ID,
			CheckIn:     req.CheckIn,
			CheckOut:    req.CheckOut,
			Nights:      nights,
			TotalPrice:  totalPrice,
			PointsDelta: delta,
			BookingDate: now,
			Payment: entity.Payment{
				PointsUsed: req.Payment.PointsUsed,
				Method:     req.Payment.Method,
				Status:     entity.PaymentStatusPending,
			},
			Status:    entity.ReservationStatusActive,
			UpdatedAt: now,
		}

		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.reservationRepo.Create(txCtx, candidate); err != nil {
				return err
			}
			return s.ledger.Apply(txCtx, user, delta)
		})
		if err != nil {
			return err
		}

		reservation = candidate
		return nil
	})
	if err != nil {
		return nil, s.reject("create", err)
	}

	metrics.ReservationsCreated.Inc()
	metrics.ReservationsAmount.Add(reservation.TotalPrice)

	s.publish(ctx, entity.EventReservationCreated, reservation)

	return reservation, nil
}

// CancelReservation отменяет бронирование по политике номера и откатывает начисленные баллы
// Возвращает штраф за отмену
func (s *ReservationService) CancelReservation(ctx context.Context, userID, reservationID string) (float64, error) {
	unlock, err := s.lockUser(ctx, userID)
	if err != nil {
		return 0, s.reject("cancel", err)
	}
	defer unlock()

	current, err := s.getOwned(ctx, userID, reservationID)
	if err != nil {
		return 0, s.reject("cancel", err)
	}
	if !current.IsActive() {
		return 0, s.reject("cancel", ErrAlreadyCancelled)
	}

	room, err := s.catalog.GetRoom(ctx, current.RoomID)
	if err != nil {
		if errors.Is(err, infrastructure.ErrCatalogNotFound) {
			return 0, s.reject("cancel", ErrRoomNotFound)
		}
		return 0, fmt.Errorf("failed to get room from catalog: %w", err)
	}

	var (
		penalty   float64
		cancelled entity.Reservation
	)

	err = s.withRetry(ctx, func(ctx context.Context) error {
		user, err := s.getUser(ctx, userID)
		if err != nil {
			return err
		}

		// Каждая попытка начинает с исходного состояния
		cancelled = *current
		penalty, err = EvaluateCancellation(&cancelled, room.CancellationPolicy, s.now())
		if err != nil {
			return err
		}

		return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.reservationRepo.Update(txCtx, &cancelled); err != nil {
				return err
			}
			return s.ledger.Reverse(txCtx, user, cancelled.PointsDelta)
		})
	})
	if err != nil {
		return 0, s.reject("cancel", err)
	}

	metrics.ReservationsCancelled.Inc()

	s.publish(ctx, entity.EventReservationCancelled, &cancelled)

	return penalty, nil
}

// ModifyReservation меняет даты активного бронирования
// Цена и баллы НЕ пересчитываются: гость сохраняет цену на момент бронирования
func (s *ReservationService) ModifyReservation(ctx context.Context, userID, reservationID string, req *entity.ModifyReservationRequest) (*entity.Reservation, error) {
	if err := ValidateDateRange(req.CheckIn, req.CheckOut, s.now()); err != nil {
		return nil, s.reject("modify", err)
	}

	unlock, err := s.lockUser(ctx, userID)
	if err != nil {
		return nil, s.reject("modify", err)
	}
	defer unlock()

	reservation, err := s.getOwned(ctx, userID, reservationID)
	if err != nil {
		return nil, s.reject("modify", err)
	}
	if !reservation.IsActive() {
		return nil, s.reject("modify", ErrAlreadyCancelled)
	}

	existing, err := s.reservationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reservations: %w", err)
	}
	if conflict := FindConflict(existing, req.CheckIn, req.CheckOut, reservation.ID); conflict != nil {
		return nil, s.reject("modify", fmt.Errorf("%w: %s", ErrReservationConflict, conflict.ID))
	}

	reservation.CheckIn = req.CheckIn
	reservation.CheckOut = req.CheckOut
	reservation.Nights = NightsBetween(req.CheckIn, req.CheckOut)

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	metrics.ReservationsModified.Inc()

	s.publish(ctx, entity.EventReservationModified, reservation)

	return reservation, nil
}

// GetReservation возвращает бронирование владельца
func (s *ReservationService) GetReservation(ctx context.Context, userID, reservationID string) (*entity.Reservation, error) {
	return s.getOwned(ctx, userID, reservationID)
}

// GetUserReservations - все бронирования пользователя, включая отмененные
func (s *ReservationService) GetUserReservations(ctx context.Context, userID string) ([]entity.Reservation, error) {
	reservations, err := s.reservationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reservations: %w", err)
	}
	return reservations, nil
}

// GetReservationsByUser - для администратора, пользователь должен существовать
func (s *ReservationService) GetReservationsByUser(ctx context.Context, userID string) ([]entity.Reservation, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.GetUserReservations(ctx, userID)
}

func (s *ReservationService) getOwned(ctx context.Context, userID, reservationID string) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.UserID != userID {
		return nil, ErrAccessDenied
	}

	return reservation, nil
}

func (s *ReservationService) getUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *ReservationService) lockUser(ctx context.Context, userID string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, userLockKey(userID))
	if err != nil {
		if errors.Is(err, infrastructure.ErrLockNotAcquired) {
			return nil, ErrConcurrentModification
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	return unlock, nil
}

// withRetry повторяет fn, пока баланс меняется конкурентно, не больше maxRetries раз
func (s *ReservationService) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
		if attempt >= s.maxRetries {
			return ErrConcurrentModification
		}
		metrics.LoyaltyCASRetries.Inc()
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *ReservationService) publish(ctx context.Context, eventType string, r *entity.Reservation) {
	publishEvent(ctx, s.publisher, r.ID, entity.ReservationEvent{
		EventType:     eventType,
		ReservationID: r.ID,
		UserID:        r.UserID,
		HotelID:       r.HotelID,
		RoomID:        r.RoomID,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		TotalPrice:    r.TotalPrice,
		PointsDelta:   r.PointsDelta,
		PenaltyFee:    r.PenaltyFee,
		Status:        r.Status,
		Timestamp:     s.now(),
	})
}

// reject считает отказы по типу ошибки и возвращает ошибку без изменений
func (s *ReservationService) reject(operation string, err error) error {
	metrics.RecordRejection(operation, rejectionReason(err))
	return err
}

func userLockKey(userID string) string {
	return "lock:booking:user:" + userID
}
