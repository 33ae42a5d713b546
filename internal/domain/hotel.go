package domain

import "time"

type RoomType string

const (
	RoomSingle       RoomType = "single"
	RoomDouble       RoomType = "double"
	RoomTwin         RoomType = "twin"
	RoomTriple       RoomType = "triple"
	RoomSuite        RoomType = "suite"
	RoomPresidential RoomType = "presidential"
	RoomFamily       RoomType = "family"
)

type Hotel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Stars       int       `json:"stars"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	ManagerID   int64     `json:"manager_id,omitempty"`
	Amenities   []string  `json:"amenities,omitempty" gorm:"serializer:json"`
	Images      []string  `json:"images,omitempty" gorm:"serializer:json"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Room struct {
	ID            int64     `json:"id"`
	HotelID       int64     `json:"hotel_id"`
	RoomNumber    string    `json:"room_number"`
	Type          RoomType  `json:"type"`
	Description   string    `json:"description,omitempty"`
	PricePerNight float64   `json:"price_per_night"`
	Capacity      int       `json:"capacity"`
	Amenities     []string  `json:"amenities,omitempty" gorm:"serializer:json"`
	Images        []string  `json:"images,omitempty" gorm:"serializer:json"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoomAvailability is a per-date row. A missing row for a date means the
// room is available at its base price.
type RoomAvailability struct {
	ID            int64     `json:"id"`
	RoomID        int64     `json:"room_id" gorm:"uniqueIndex:idx_room_date"`
	Date          time.Time `json:"date" gorm:"uniqueIndex:idx_room_date"`
	IsAvailable   bool      `json:"is_available"`
	PriceOverride *float64  `json:"price_override,omitempty"`
}
