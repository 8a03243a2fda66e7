package entity

const (
	HotelSortRating = "rating"
	RoomSortPrice   = "price"
)

// HotelFilter - параметры GET /hotels
// Без Sort отели упорядочены по имени
type HotelFilter struct {
	Name      string  `form:"name" validate:"omitempty,max=200"`
	City      string  `form:"city" validate:"omitempty,max=100"`
	MinRating float64 `form:"min_rating" validate:"gte=0,lte=5"`
	Sort      string  `form:"sort" validate:"omitempty,oneof=rating"`
}

// RoomFilter - параметры GET /hotels/:hotel_id/rooms
type RoomFilter struct {
	RoomType  string  `form:"room_type" validate:"omitempty,max=50"`
	MaxPrice  float64 `form:"max_price" validate:"gte=0"`
	MinGuests int     `form:"min_guests" validate:"gte=0"`
	Sort      string  `form:"sort" validate:"omitempty,oneof=price"`
}

type HotelListResponse struct {
	Hotels []Hotel `json:"hotels"`
	Total  int     `json:"total"`
}

type RoomListResponse struct {
	Rooms []Room `json:"rooms"`
	Total int    `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
