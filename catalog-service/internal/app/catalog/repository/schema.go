package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Схема каталога. rating и review_count обновляет rating-worker
var schema = []string{
	`CREATE TABLE IF NOT EXISTS hotels (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		image_urls TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_hotels_city ON hotels (LOWER(city))`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id UUID PRIMARY KEY,
		hotel_id UUID NOT NULL REFERENCES hotels(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		room_type TEXT NOT NULL,
		price_per_night DOUBLE PRECISION NOT NULL CHECK (price_per_night >= 0),
		cleaning_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
		service_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
		tax_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		beds INTEGER NOT NULL DEFAULT 1,
		baths INTEGER NOT NULL DEFAULT 1,
		guests INTEGER NOT NULL DEFAULT 1,
		amenities JSONB NOT NULL DEFAULT '[]',
		image_urls JSONB NOT NULL DEFAULT '[]',
		cancellation_allowed BOOLEAN NOT NULL DEFAULT TRUE,
		cancellation_penalty_fee DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_hotel_id ON rooms (hotel_id)`,
}

// EnsureSchema создает таблицы при первом запуске
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
