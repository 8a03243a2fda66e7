package service

import (
	"context"
	"errors"
	"fmt"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/repository"
	"staybook/pkg/metrics"

	"github.com/shopspring/decimal"
)

// ReversalPolicy определяет поведение, если отмена уводит баланс в минус
// (баллы уже потрачены на другое бронирование)
type ReversalPolicy string

const (
	// ReversalClamp обнуляет баланс вместо отрицательного значения
	ReversalClamp ReversalPolicy = "clamp"
	// ReversalStrict отклоняет отмену с ErrInsufficientPoints
	ReversalStrict ReversalPolicy = "strict"
)

// PointsPerCurrencyUnit - столько баллов списывается за одну денежную единицу скидки
const PointsPerCurrencyUnit = 100

// PointsForBooking - floor(totalPrice) - floor(pointsUsed / 100)
// Результат может быть отрицательным, если гость тратит больше чем зарабатывает
func PointsForBooking(totalPrice decimal.Decimal, pointsUsed int64) (int64, error) {
	if pointsUsed < 0 {
		return 0, fmt.Errorf("%w: points used must be non-negative", ErrInvalidInput)
	}
	if totalPrice.IsNegative() {
		return 0, fmt.Errorf("%w: total price must be non-negative", ErrInvalidInput)
	}

	earned := totalPrice.Floor().IntPart()
	spent := pointsUsed / PointsPerCurrencyUnit

	return earned - spent, nil
}

// ApplyDelta возвращает balance+delta или ErrInsufficientPoints, если сумма меньше нуля
func ApplyDelta(balance, delta int64) (int64, error) {
	next := balance + delta
	if next < 0 {
		return balance, fmt.Errorf("%w: balance %d, delta %d", ErrInsufficientPoints, balance, delta)
	}
	return next, nil
}

// ReverseDelta откатывает ранее примененный delta
func ReverseDelta(balance, delta int64, policy ReversalPolicy) (int64, error) {
	next := balance - delta
	if next >= 0 {
		return next, nil
	}
	if policy == ReversalStrict {
		return balance, fmt.Errorf("%w: reversal of %d from balance %d", ErrInsufficientPoints, delta, balance)
	}
	return 0, nil
}

// LoyaltyLedger записывает изменения баланса через compare-and-swap по версии пользователя
// При гонке возвращает repository.ErrVersionConflict, повтор остается за вызывающим
type LoyaltyLedger struct {
	users  repository.UserRepository
	policy ReversalPolicy
}

func NewLoyaltyLedger(users repository.UserRepository, policy ReversalPolicy) *LoyaltyLedger {
	if policy != ReversalStrict {
		policy = ReversalClamp
	}
	return &LoyaltyLedger{users: users, policy: policy}
}

// Apply начисляет (или списывает при отрицательном delta) баллы
func (l *LoyaltyLedger) Apply(ctx context.Context, user *entity.User, delta int64) error {
	next, err := ApplyDelta(user.RewardPoints, delta)
	if err != nil {
		return err
	}
	if err := l.write(ctx, user, next); err != nil {
		return err
	}
	metrics.LoyaltyPointsDelta.WithLabelValues("apply").Observe(float64(delta))
	return nil
}

// Reverse откатывает delta, начисленный при бронировании
func (l *LoyaltyLedger) Reverse(ctx context.Context, user *entity.User, delta int64) error {
	next, err := ReverseDelta(user.RewardPoints, delta, l.policy)
	if err != nil {
		return err
	}
	if err := l.write(ctx, user, next); err != nil {
		return err
	}
	metrics.LoyaltyPointsDelta.WithLabelValues("reverse").Observe(float64(-delta))
	return nil
}

func (l *LoyaltyLedger) write(ctx context.Context, user *entity.User, points int64) error {
	if err := l.users.UpdatePoints(ctx, user.ID, user.Version, points); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	user.RewardPoints = points
	user.Version++
	return nil
}
