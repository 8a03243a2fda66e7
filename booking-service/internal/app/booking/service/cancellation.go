package service

import (
	"time"

	"staybook/booking-service/internal/app/booking/entity"
)

// EvaluateCancellation проверяет политику номера и переводит бронирование в cancelled
// Возвращает штраф. Баланс баллов здесь не трогается
func EvaluateCancellation(res *entity.Reservation, policy entity.CancellationPolicy, now time.Time) (float64, error) {
	if !res.IsActive() {
		return 0, ErrAlreadyCancelled
	}
	if !policy.Allowed {
		return 0, ErrCancellationNotAllowed
	}

	cancelledAt := now
	res.Status = entity.ReservationStatusCancelled
	res.CancellationDate = &cancelledAt
	res.Payment.Status = entity.PaymentStatusRefunded
	res.PenaltyFee = policy.PenaltyFee
	res.UpdatedAt = now

	return policy.PenaltyFee, nil
}
