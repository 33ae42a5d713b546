package booking

import (
	"context"
	"time"

	"hotelreserve/internal/clients"
	"hotelreserve/internal/domain"
	"hotelreserve/internal/repository"
)

// ReservationRepository is the slice of the reservation store the service
// needs.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error)
	List(ctx context.Context, f repository.ReservationFilter) ([]domain.Reservation, int64, error)
	Update(ctx context.Context, res *domain.Reservation) error
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, reason string, at time.Time) error
	CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error)
}

// RoomCatalog is the inventory service as seen from booking.
type RoomCatalog interface {
	GetRoom(ctx context.Context, roomID int64) (*domain.Room, error)
	CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (*clients.Availability, error)
	HoldDates(ctx context.Context, roomID int64, checkIn, checkOut time.Time) error
	ReleaseDates(ctx context.Context, roomID int64, checkIn, checkOut time.Time) error
}

// EventPublisher pushes reservation lifecycle events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
