package payment

import (
	"context"

	"hotelreserve/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	HasCompleted(ctx context.Context, reservationID int64) (bool, error)
}

// ReservationSource is the booking service as seen from payments.
type ReservationSource interface {
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	SetStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// EventPublisher pushes payment lifecycle events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
