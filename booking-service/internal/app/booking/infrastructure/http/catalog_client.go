package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/infrastructure"
)

// CatalogClient ходит в Catalog Service за номерами и отелями
// Цена и политика отмены всегда берутся из каталога, а не из запроса клиента
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetRoom - GET /rooms/{id}
func (c *CatalogClient) GetRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	var room entity.Room
	if err := c.get(ctx, "/rooms/"+url.PathEscape(roomID), &room); err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", roomID, err)
	}
	return &room, nil
}

// GetHotel - GET /hotels/{id}
func (c *CatalogClient) GetHotel(ctx context.Context, hotelID string) (*entity.Hotel, error) {
	var hotel entity.Hotel
	if err := c.get(ctx, "/hotels/"+url.PathEscape(hotelID), &hotel); err != nil {
		return nil, fmt.Errorf("failed to get hotel %s: %w", hotelID, err)
	}
	return &hotel, nil
}

func (c *CatalogClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return infrastructure.ErrCatalogNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

type requestIDKey struct{}

// WithRequestID кладет X-Request-ID в контекст, чтобы связать логи с Catalog Service
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
