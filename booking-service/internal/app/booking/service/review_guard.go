package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/infrastructure"
	"staybook/booking-service/internal/app/booking/repository"
)

type ReviewMode int

const (
	ReviewModeCreate ReviewMode = iota
	ReviewModeUpdate
	ReviewModeDelete
)

// ReviewGuard решает, может ли пользователь писать отзыв об отеле
//
// По умолчанию достаточно любого бронирования в отеле, даже отмененного или будущего.
// С requireCompletedStay учитываются только активные бронирования с выездом в прошлом.
type ReviewGuard struct {
	catalog              infrastructure.CatalogClient
	reservationRepo      repository.ReservationRepository
	reviewRepo           repository.ReviewRepository
	requireCompletedStay bool
	now                  func() time.Time
}

func NewReviewGuard(
	catalog infrastructure.CatalogClient,
	reservationRepo repository.ReservationRepository,
	reviewRepo repository.ReviewRepository,
	requireCompletedStay bool,
) *ReviewGuard {
	return &ReviewGuard{
		catalog:              catalog,
		reservationRepo:      reservationRepo,
		reviewRepo:           reviewRepo,
		requireCompletedStay: requireCompletedStay,
		now:                  time.Now,
	}
}

// Check возвращает существующий отзыв для update и delete, для create - nil
func (g *ReviewGuard) Check(ctx context.Context, userID, hotelID string, mode ReviewMode) (*entity.Review, error) {
	if _, err := g.catalog.GetHotel(ctx, hotelID); err != nil {
		if errors.Is(err, infrastructure.ErrCatalogNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to get hotel from catalog: %w", err)
	}

	// Удалить свой отзыв можно и без подтвержденного проживания
	if mode != ReviewModeDelete {
		if err := g.verifyStay(ctx, userID, hotelID); err != nil {
			return nil, err
		}
	}

	existing, err := g.reviewRepo.GetByUserAndHotel(ctx, userID, hotelID)
	if err != nil && !errors.Is(err, repository.ErrReviewNotFound) {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if mode == ReviewModeCreate {
		if existing != nil {
			return nil, ErrReviewAlreadyExists
		}
		return nil, nil
	}

	if existing == nil {
		return nil, ErrReviewNotFound
	}
	return existing, nil
}

func (g *ReviewGuard) verifyStay(ctx context.Context, userID, hotelID string) error {
	reservations, err := g.reservationRepo.GetByUserAndHotel(ctx, userID, hotelID)
	if err != nil {
		return fmt.Errorf("failed to get reservations: %w", err)
	}

	if !g.requireCompletedStay {
		if len(reservations) == 0 {
			return ErrStayNotVerified
		}
		return nil
	}

	now := g.now()
	for _, r := range reservations {
		if r.IsActive() && !r.CheckOut.After(now) {
			return nil
		}
	}
	return ErrStayNotVerified
}
