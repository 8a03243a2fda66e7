package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotalPrice_OneNightWithTax(t *testing.T) {
	total, err := CalculateTotalPrice(PriceInput{NightlyRate: 100, TaxRate: 0.1, Nights: 1})

	require.NoError(t, err)
	assert.Equal(t, "110.00", total.StringFixed(2))
}

func TestCalculateTotalPrice_ClosedForm(t *testing.T) {
	cases := []struct {
		name string
		in   PriceInput
		want string
	}{
		{"fees are not multiplied by nights", PriceInput{NightlyRate: 80, CleaningFee: 25, ServiceFee: 15, TaxRate: 0.2, Nights: 3}, "336.00"},
		{"zero tax", PriceInput{NightlyRate: 99.99, Nights: 2}, "199.98"},
		{"free room with fees", PriceInput{CleaningFee: 10, ServiceFee: 5, TaxRate: 0.5, Nights: 1}, "22.50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total, err := CalculateTotalPrice(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, total.StringFixed(2))
		})
	}
}

func TestCalculateTotalPrice_BankersRounding(t *testing.T) {
	// 0.125 -> 0.12 и 0.135 -> 0.14: половина округляется к четному
	total, err := CalculateTotalPrice(PriceInput{NightlyRate: 0.125, Nights: 1})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("0.12")), total.String())

	total, err = CalculateTotalPrice(PriceInput{NightlyRate: 0.135, Nights: 1})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("0.14")), total.String())
}

func TestCalculateTotalPrice_Deterministic(t *testing.T) {
	in := PriceInput{NightlyRate: 123.45, CleaningFee: 7.5, ServiceFee: 3.25, TaxRate: 0.13, Nights: 4}

	first, err := CalculateTotalPrice(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		next, err := CalculateTotalPrice(in)
		require.NoError(t, err)
		assert.True(t, first.Equal(next))
	}
}

func TestCalculateTotalPrice_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   PriceInput
	}{
		{"zero nights", PriceInput{NightlyRate: 100, Nights: 0}},
		{"negative nights", PriceInput{NightlyRate: 100, Nights: -1}},
		{"negative rate", PriceInput{NightlyRate: -1, Nights: 1}},
		{"negative cleaning fee", PriceInput{NightlyRate: 100, CleaningFee: -5, Nights: 1}},
		{"negative service fee", PriceInput{NightlyRate: 100, ServiceFee: -5, Nights: 1}},
		{"negative tax", PriceInput{NightlyRate: 100, TaxRate: -0.1, Nights: 1}},
		{"tax of 100 percent", PriceInput{NightlyRate: 100, TaxRate: 1, Nights: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateTotalPrice(tc.in)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestNightsBetween(t *testing.T) {
	day := time.Date(2030, 5, 10, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, NightsBetween(day, day.AddDate(0, 0, 1)))
	assert.Equal(t, 5, NightsBetween(day, day.AddDate(0, 0, 5)))
	assert.Equal(t, 1, NightsBetween(day, day.Add(3*time.Hour)))
	assert.Equal(t, 0, NightsBetween(day, day))
	assert.Equal(t, 0, NightsBetween(day, day.AddDate(0, 0, -1)))
}
