package service

import (
	"context"
	"errors"
	"testing"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/repository"
	"staybook/booking-service/internal/app/booking/repository/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsForBooking(t *testing.T) {
	cases := []struct {
		name       string
		total      string
		pointsUsed int64
		want       int64
	}{
		{"no points used", "110.00", 0, 110},
		{"fraction of price is dropped", "110.99", 0, 110},
		{"points used are divided by 100", "110.00", 250, 108},
		{"spending more than earning is negative", "50.00", 10000, -50},
		{"less than 100 points cost nothing", "10.00", 99, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PointsForBooking(decimal.RequireFromString(tc.total), tc.pointsUsed)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPointsForBooking_NegativePointsUsed(t *testing.T) {
	_, err := PointsForBooking(decimal.NewFromInt(10), -1)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestApplyDelta_FailsOnlyWhenResultIsNegative(t *testing.T) {
	for balance := int64(0); balance <= 20; balance++ {
		for delta := int64(-30); delta <= 30; delta++ {
			next, err := ApplyDelta(balance, delta)
			if balance+delta < 0 {
				assert.True(t, errors.Is(err, ErrInsufficientPoints), "B=%d D=%d", balance, delta)
				assert.Equal(t, balance, next)
			} else {
				assert.NoError(t, err, "B=%d D=%d", balance, delta)
				assert.Equal(t, balance+delta, next)
			}
		}
	}
}

func TestReverseDelta(t *testing.T) {
	next, err := ReverseDelta(110, 110, ReversalClamp)
	require.NoError(t, err)
	assert.Equal(t, int64(0), next)

	// Отрицательный delta при отмене возвращает потраченные баллы
	next, err = ReverseDelta(0, -50, ReversalStrict)
	require.NoError(t, err)
	assert.Equal(t, int64(50), next)
}

func TestReverseDelta_BalanceAlreadySpent(t *testing.T) {
	next, err := ReverseDelta(30, 110, ReversalClamp)
	require.NoError(t, err)
	assert.Equal(t, int64(0), next)

	next, err = ReverseDelta(30, 110, ReversalStrict)
	assert.True(t, errors.Is(err, ErrInsufficientPoints))
	assert.Equal(t, int64(30), next)
}

func TestLoyaltyLedger_ApplyWritesWithVersion(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	ledger := NewLoyaltyLedger(userRepo, ReversalClamp)

	ctx := context.Background()
	user := &entity.User{ID: "user-1", RewardPoints: 40, Version: 7}

	userRepo.On("UpdatePoints", ctx, "user-1", int64(7), int64(150)).Return(nil)

	err := ledger.Apply(ctx, user, 110)

	require.NoError(t, err)
	assert.Equal(t, int64(150), user.RewardPoints)
	assert.Equal(t, int64(8), user.Version)
	userRepo.AssertExpectations(t)
}

func TestLoyaltyLedger_ApplyInsufficientDoesNotWrite(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	ledger := NewLoyaltyLedger(userRepo, ReversalClamp)

	user := &entity.User{ID: "user-1", RewardPoints: 10, Version: 1}

	err := ledger.Apply(context.Background(), user, -11)

	assert.True(t, errors.Is(err, ErrInsufficientPoints))
	assert.Equal(t, int64(10), user.RewardPoints)
	userRepo.AssertNotCalled(t, "UpdatePoints")
}

func TestLoyaltyLedger_VersionConflictPassesThrough(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	ledger := NewLoyaltyLedger(userRepo, ReversalStrict)

	ctx := context.Background()
	user := &entity.User{ID: "user-1", RewardPoints: 100, Version: 3}

	userRepo.On("UpdatePoints", ctx, "user-1", int64(3), int64(0)).Return(repository.ErrVersionConflict)

	err := ledger.Reverse(ctx, user, 100)

	assert.True(t, errors.Is(err, repository.ErrVersionConflict))
	assert.Equal(t, int64(100), user.RewardPoints)
	assert.Equal(t, int64(3), user.Version)
}
