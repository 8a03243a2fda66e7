package service

import (
	"fmt"
	"time"

	"staybook/booking-service/internal/app/booking/entity"
)

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Выезд в день чужого заезда конфликтом не считается
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflict возвращает первое активное бронирование, пересекающееся с [checkIn, checkOut)
// Отмененные бронирования и бронирование с excludeID пропускаются
func FindConflict(existing []entity.Reservation, checkIn, checkOut time.Time, excludeID string) *entity.Reservation {
	for i := range existing {
		r := &existing[i]
		if !r.IsActive() || (excludeID != "" && r.ID == excludeID) {
			continue
		}
		if Overlaps(checkIn, checkOut, r.CheckIn, r.CheckOut) {
			return r
		}
	}
	return nil
}

// ValidateDateRange требует checkIn < checkOut и заезд строго в будущем
func ValidateDateRange(checkIn, checkOut, now time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return fmt.Errorf("%w: dates are required", ErrInvalidDateRange)
	}
	if !checkIn.Before(checkOut) {
		return fmt.Errorf("%w: check-in must be before check-out", ErrInvalidDateRange)
	}
	if !checkIn.After(now) {
		return fmt.Errorf("%w: check-in must be in the future", ErrInvalidDateRange)
	}
	return nil
}
