package clients

import (
	"context"
	"fmt"
	"net/http"

	"hotelreserve/internal/domain"
)

// BookingClient talks to the booking service's internal endpoints.
type BookingClient struct {
	baseClient
}

func NewBookingClient(baseURL, internalToken string) *BookingClient {
	return &BookingClient{baseClient: newBaseClient(baseURL, internalToken)}
}

func (c *BookingClient) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	var data struct {
		Reservation domain.Reservation `json:"reservation"`
	}
	path := fmt.Sprintf("/internal/reservations/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data.Reservation, nil
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetStatus moves a reservation to the given status, e.g. paid after a
// completed payment or refunded after a full refund.
func (c *BookingClient) SetStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	path := fmt.Sprintf("/internal/reservations/%d/status", id)
	return c.do(ctx, http.MethodPut, path, statusRequest{Status: string(status)}, nil)
}
