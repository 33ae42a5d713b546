package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hotelreserve/internal/domain"
)

// InventoryClient talks to the inventory service's internal endpoints.
type InventoryClient struct {
	baseClient
}

func NewInventoryClient(baseURL, internalToken string) *InventoryClient {
	return &InventoryClient{baseClient: newBaseClient(baseURL, internalToken)}
}

// Availability describes a room's bookability for a stay, with the
// effective rate per night (price overrides applied).
type Availability struct {
	RoomID       int64     `json:"room_id"`
	Available    bool      `json:"available"`
	NightlyRates []float64 `json:"nightly_rates"`
}

func (c *InventoryClient) GetRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	var data struct {
		Room domain.Room `json:"room"`
	}
	path := fmt.Sprintf("/internal/rooms/%d", roomID)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data.Room, nil
}

func (c *InventoryClient) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (*Availability, error) {
	q := url.Values{}
	q.Set("check_in", checkIn.Format("2006-01-02"))
	q.Set("check_out", checkOut.Format("2006-01-02"))

	var data Availability
	path := fmt.Sprintf("/internal/rooms/%d/availability?%s", roomID, q.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

type holdRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// HoldDates marks the stay's nights unavailable.
func (c *InventoryClient) HoldDates(ctx context.Context, roomID int64, checkIn, checkOut time.Time) error {
	path := fmt.Sprintf("/internal/rooms/%d/hold", roomID)
	return c.do(ctx, http.MethodPost, path, holdRequest{
		CheckIn:  checkIn.Format("2006-01-02"),
		CheckOut: checkOut.Format("2006-01-02"),
	}, nil)
}

// ReleaseDates frees previously held nights.
func (c *InventoryClient) ReleaseDates(ctx context.Context, roomID int64, checkIn, checkOut time.Time) error {
	path := fmt.Sprintf("/internal/rooms/%d/release", roomID)
	return c.do(ctx, http.MethodPost, path, holdRequest{
		CheckIn:  checkIn.Format("2006-01-02"),
		CheckOut: checkOut.Format("2006-01-02"),
	}, nil)
}
