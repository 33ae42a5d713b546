package domain

import "time"

type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "pending"
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationPaid       ReservationStatus = "paid"
	ReservationCheckedIn  ReservationStatus = "checked_in"
	ReservationCheckedOut ReservationStatus = "checked_out"
	ReservationCancelled  ReservationStatus = "cancelled"
	ReservationModified   ReservationStatus = "modified"
	ReservationRefunded   ReservationStatus = "refunded"
)

type Reservation struct {
	ID                 int64             `json:"id"`
	UserID             int64             `json:"user_id"`
	RoomID             int64             `json:"room_id"`
	HotelID            int64             `json:"hotel_id"`
	CheckIn            time.Time         `json:"check_in"`
	CheckOut           time.Time         `json:"check_out"`
	Guests             int               `json:"guests"`
	Nights             int               `json:"nights"`
	Subtotal           float64           `json:"subtotal"`
	Taxes              float64           `json:"taxes"`
	TotalPrice         float64           `json:"total_price"`
	Status             ReservationStatus `json:"status"`
	ConfirmationCode   string            `json:"confirmation_code" gorm:"uniqueIndex"`
	SpecialRequests    string            `json:"special_requests,omitempty"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}
