package inventory

import "hotelreserve/internal/domain"

type CreateHotelRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Address     string   `json:"address" binding:"required"`
	City        string   `json:"city" binding:"required"`
	Country     string   `json:"country" binding:"required"`
	Stars       int      `json:"stars" binding:"required,min=1,max=5"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

type UpdateHotelRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Stars       *int     `json:"stars"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

type CreateRoomRequest struct {
	RoomNumber    string   `json:"room_number" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"price_per_night" binding:"required,gt=0"`
	Capacity      int      `json:"capacity" binding:"required,min=1"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

type UpdateRoomRequest struct {
	RoomNumber    *string  `json:"room_number"`
	Type          *string  `json:"type"`
	Description   *string  `json:"description"`
	PricePerNight *float64 `json:"price_per_night"`
	Capacity      *int     `json:"capacity"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

type AvailabilityDay struct {
	Date          string   `json:"date" binding:"required"`
	IsAvailable   bool     `json:"is_available"`
	PriceOverride *float64 `json:"price_override"`
}

type SetAvailabilityRequest struct {
	Days []AvailabilityDay `json:"days" binding:"required,min=1"`
}

// EffectiveDay is an availability row with the price the guest would pay.
type EffectiveDay struct {
	Date        string  `json:"date"`
	IsAvailable bool    `json:"is_available"`
	Price       float64 `json:"price"`
}

type HotelListResponse struct {
	Hotels []domain.Hotel `json:"hotels"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
