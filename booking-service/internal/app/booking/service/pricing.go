package service

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// PriceInput - все что нужно для расчета стоимости проживания
type PriceInput struct {
	NightlyRate float64
	CleaningFee float64
	ServiceFee  float64
	TaxRate     float64 // Доля, 0.1 = 10%
	Nights      int
}

var one = decimal.NewFromInt(1)

// CalculateTotalPrice считает (rate*nights + cleaning + service) * (1 + tax)
// Результат округляется до центов по правилу банковского округления
func CalculateTotalPrice(in PriceInput) (decimal.Decimal, error) {
	if in.Nights <= 0 {
		return decimal.Zero, fmt.Errorf("%w: nights must be positive, got %d", ErrInvalidInput, in.Nights)
	}
	if in.NightlyRate < 0 || in.CleaningFee < 0 || in.ServiceFee < 0 || in.TaxRate < 0 {
		return decimal.Zero, fmt.Errorf("%w: rates and fees must be non-negative", ErrInvalidInput)
	}
	if in.TaxRate >= 1 {
		return decimal.Zero, fmt.Errorf("%w: tax rate must be below 1, got %v", ErrInvalidInput, in.TaxRate)
	}

	base := decimal.NewFromFloat(in.NightlyRate).
		Mul(decimal.NewFromInt(int64(in.Nights))).
		Add(decimal.NewFromFloat(in.CleaningFee)).
		Add(decimal.NewFromFloat(in.ServiceFee))

	total := base.Mul(one.Add(decimal.NewFromFloat(in.TaxRate)))

	return total.RoundBank(2), nil
}

// NightsBetween - число ночей между датами заезда и выезда
// Неполные сутки считаются за ночь
func NightsBetween(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}
