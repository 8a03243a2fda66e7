package handler

import (
	"errors"
	"net/http"

	"staybook/catalog-service/internal/app/catalog/entity"
	"staybook/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CatalogHandler обрабатывает публичные запросы к каталогу отелей
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// ListHotels обрабатывает GET /hotels?name=&city=&min_rating=&sort=rating
func (h *CatalogHandler) ListHotels(c *gin.Context) {
	var filter entity.HotelFilter
	if !h.bindFilter(c, &filter) {
		return
	}

	hotels, err := h.catalogService.ListHotels(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to get hotels")
		return
	}

	c.JSON(http.StatusOK, entity.HotelListResponse{Hotels: hotels, Total: len(hotels)})
}

// GetHotel обрабатывает GET /hotels/:hotel_id
func (h *CatalogHandler) GetHotel(c *gin.Context) {
	hotelID, ok := parseID(c, "hotel_id", service.ErrHotelNotFound)
	if !ok {
		return
	}

	hotel, err := h.catalogService.GetHotel(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err, "Failed to get hotel")
		return
	}

	c.JSON(http.StatusOK, hotel)
}

// ListRooms обрабатывает GET /hotels/:hotel_id/rooms?room_type=&max_price=&min_guests=&sort=price
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	hotelID, ok := parseID(c, "hotel_id", service.ErrHotelNotFound)
	if !ok {
		return
	}

	var filter entity.RoomFilter
	if !h.bindFilter(c, &filter) {
		return
	}

	rooms, err := h.catalogService.ListRooms(c.Request.Context(), hotelID, filter)
	if err != nil {
		respondError(c, err, "Failed to get rooms")
		return
	}

	c.JSON(http.StatusOK, entity.RoomListResponse{Rooms: rooms, Total: len(rooms)})
}

// GetHotelRoom обрабатывает GET /hotels/:hotel_id/rooms/:room_id
func (h *CatalogHandler) GetHotelRoom(c *gin.Context) {
	hotelID, ok := parseID(c, "hotel_id", service.ErrHotelNotFound)
	if !ok {
		return
	}
	roomID, ok := parseID(c, "room_id", service.ErrRoomNotFound)
	if !ok {
		return
	}

	room, err := h.catalogService.GetHotelRoom(c.Request.Context(), hotelID, roomID)
	if err != nil {
		respondError(c, err, "Failed to get room")
		return
	}

	c.JSON(http.StatusOK, room)
}

// GetRoom обрабатывает GET /rooms/:room_id, его вызывает Booking Service
func (h *CatalogHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseID(c, "room_id", service.ErrRoomNotFound)
	if !ok {
		return
	}

	room, err := h.catalogService.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err, "Failed to get room")
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *CatalogHandler) bindFilter(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return false
	}
	if err := h.validator.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return false
	}
	return true
}

// parseID - невалидный UUID означает, что такой записи нет
func parseID(c *gin.Context, param string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondError(c, notFound, "")
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrHotelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
	case errors.Is(err, service.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
