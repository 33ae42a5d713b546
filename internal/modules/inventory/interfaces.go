package inventory

import (
	"context"
	"time"

	"hotelreserve/internal/domain"
	"hotelreserve/internal/repository"
)

type HotelRepository interface {
	Create(ctx context.Context, h *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	List(ctx context.Context, f repository.HotelFilter) ([]domain.Hotel, int64, error)
	Update(ctx context.Context, h *domain.Hotel) error
	Deactivate(ctx context.Context, id int64) error
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Deactivate(ctx context.Context, id int64) error
	Search(ctx context.Context, f repository.RoomSearchFilter) ([]domain.Room, error)
}

type AvailabilityRepository interface {
	GetRange(ctx context.Context, roomID int64, from, to time.Time) ([]domain.RoomAvailability, error)
	CountUnavailable(ctx context.Context, roomID int64, from, to time.Time) (int64, error)
	Upsert(ctx context.Context, rows []domain.RoomAvailability) error
	SetAvailable(ctx context.Context, roomID int64, from, to time.Time, available bool) error
}
