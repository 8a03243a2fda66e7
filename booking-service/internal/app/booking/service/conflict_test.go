package service

import (
	"errors"
	"testing"
	"time"

	"staybook/booking-service/internal/app/booking/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return base.AddDate(0, 0, n)
}

func TestOverlaps(t *testing.T) {
	// Касание границ не конфликт
	assert.False(t, Overlaps(day(10), day(15), day(15), day(20)))
	assert.False(t, Overlaps(day(15), day(20), day(10), day(15)))

	assert.True(t, Overlaps(day(10), day(15), day(12), day(18)))
	assert.True(t, Overlaps(day(12), day(18), day(10), day(15)))
	assert.True(t, Overlaps(day(10), day(20), day(12), day(13)))
	assert.True(t, Overlaps(day(10), day(15), day(10), day(15)))

	assert.False(t, Overlaps(day(1), day(2), day(5), day(6)))
}

func TestOverlaps_Symmetric(t *testing.T) {
	for a := 0; a < 6; a++ {
		for b := a + 1; b < 7; b++ {
			for c := 0; c < 6; c++ {
				for d := c + 1; d < 7; d++ {
					assert.Equal(t,
						Overlaps(day(a), day(b), day(c), day(d)),
						Overlaps(day(c), day(d), day(a), day(b)),
						"[%d,%d) vs [%d,%d)", a, b, c, d)
				}
			}
		}
	}
}

func TestFindConflict(t *testing.T) {
	existing := []entity.Reservation{
		{ID: "cancelled", CheckIn: day(10), CheckOut: day(15), Status: entity.ReservationStatusCancelled},
		{ID: "first", CheckIn: day(20), CheckOut: day(25), Status: entity.ReservationStatusActive},
		{ID: "second", CheckIn: day(22), CheckOut: day(28), Status: entity.ReservationStatusActive},
	}

	assert.Nil(t, FindConflict(existing, day(10), day(15), ""), "cancelled reservations do not block")
	assert.Nil(t, FindConflict(existing, day(15), day(20), ""))

	conflict := FindConflict(existing, day(24), day(26), "")
	require.NotNil(t, conflict)
	assert.Equal(t, "first", conflict.ID)

	conflict = FindConflict(existing, day(24), day(26), "first")
	require.NotNil(t, conflict)
	assert.Equal(t, "second", conflict.ID)

	assert.Nil(t, FindConflict(existing, day(20), day(22), "first"))
	assert.Nil(t, FindConflict(nil, day(1), day(2), ""))
}

func TestValidateDateRange(t *testing.T) {
	now := day(5)

	assert.NoError(t, ValidateDateRange(day(6), day(7), now))

	cases := []struct {
		name              string
		checkIn, checkOut time.Time
	}{
		{"check-in in the past", day(4), day(7)},
		{"check-in equals now", day(5), day(7)},
		{"check-out before check-in", day(8), day(7)},
		{"empty range", day(8), day(8)},
		{"zero dates", time.Time{}, time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDateRange(tc.checkIn, tc.checkOut, now)
			assert.True(t, errors.Is(err, ErrInvalidDateRange), "got %v", err)
		})
	}
}
