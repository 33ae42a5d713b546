// Package events carries reservation lifecycle events between services
// over RabbitMQ.
package events

import "time"

// Exchange is the shared topic exchange every service publishes to.
const Exchange = "events"

// Routing keys for reservation lifecycle events.
const (
	KeyReservationCreated   = "reservation.created"
	KeyReservationUpdated   = "reservation.updated"
	KeyReservationCancelled = "reservation.cancelled"
	KeyPaymentCompleted     = "payment.completed"
	KeyPaymentRefunded      = "payment.refunded"
)

type ReservationEvent struct {
	ReservationID    int64     `json:"reservation_id"`
	UserID           int64     `json:"user_id"`
	HotelID          int64     `json:"hotel_id"`
	RoomID           int64     `json:"room_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	TotalPrice       float64   `json:"total_price"`
	Status           string    `json:"status"`
	Reason           string    `json:"reason,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type PaymentEvent struct {
	PaymentID     int64     `json:"payment_id"`
	ReservationID int64     `json:"reservation_id"`
	UserID        int64     `json:"user_id"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
