package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staybook/catalog-service/internal/app/catalog/entity"
	"staybook/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const hotelColumns = `id, name, description, city, rating, review_count, COALESCE(image_urls, '{}')`

type hotelRepository struct {
	db *pgxpool.Pool
}

func NewHotelRepository(db *pgxpool.Pool) HotelRepository {
	return &hotelRepository{db: db}
}

// GetByID возвращает отель и id его номеров
func (r *hotelRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.HotelDetails, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "hotels")
	defer timer.ObserveDuration()

	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = $1`

	var details entity.HotelDetails
	if err := scanHotel(r.db.QueryRow(ctx, query, id), &details.Hotel); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, timer.Fail(fmt.Errorf("failed to get hotel by id: %w", err))
	}

	rows, err := r.db.Query(ctx, `SELECT id FROM rooms WHERE hotel_id = $1 ORDER BY name ASC`, id)
	if err != nil {
		return nil, timer.Fail(fmt.Errorf("failed to get hotel rooms: %w", err))
	}
	defer rows.Close()

	details.RoomIDs = make([]uuid.UUID, 0)
	for rows.Next() {
		var roomID uuid.UUID
		if err := rows.Scan(&roomID); err != nil {
			return nil, fmt.Errorf("failed to scan room id: %w", err)
		}
		details.RoomIDs = append(details.RoomIDs, roomID)
	}
	if err := rows.Err(); err != nil {
		return nil, timer.Fail(fmt.Errorf("error iterating rooms: %w", err))
	}

	return &details, nil
}

func (r *hotelRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "hotels")
	defer timer.ObserveDuration()

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM hotels WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, timer.Fail(fmt.Errorf("failed to check hotel: %w", err))
	}
	return exists, nil
}

func (r *hotelRepository) List(ctx context.Context, filter entity.HotelFilter) ([]entity.Hotel, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "hotels")
	defer timer.ObserveDuration()

	query, args := buildHotelQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, timer.Fail(fmt.Errorf("failed to list hotels: %w", err))
	}
	defer rows.Close()

	hotels := make([]entity.Hotel, 0)
	for rows.Next() {
		var hotel entity.Hotel
		if err := scanHotel(rows, &hotel); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, hotel)
	}
	if err := rows.Err(); err != nil {
		return nil, timer.Fail(fmt.Errorf("error iterating hotels: %w", err))
	}

	return hotels, nil
}

// buildHotelQuery собирает SELECT с плейсхолдерами $1..$n, значения фильтра в текст запроса не попадают
func buildHotelQuery(filter entity.HotelFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if name := strings.TrimSpace(filter.Name); name != "" {
		args = append(args, "%"+escapeLike(name)+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		args = append(args, city)
		conditions = append(conditions, fmt.Sprintf("LOWER(city) = LOWER($%d)", len(args)))
	}
	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + hotelColumns + ` FROM hotels`)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	switch filter.Sort {
	case entity.HotelSortRating:
		sb.WriteString(" ORDER BY rating DESC, review_count DESC, name ASC")
	default:
		sb.WriteString(" ORDER BY name ASC")
	}

	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanHotel(row pgx.Row, hotel *entity.Hotel) error {
	return row.Scan(
		&hotel.ID,
		&hotel.Name,
		&hotel.Description,
		&hotel.City,
		&hotel.Rating,
		&hotel.ReviewCount,
		&hotel.ImageURLs,
	)
}
