package booking

import "hotelreserve/internal/domain"

type CreateReservationRequest struct {
	RoomID          int64  `json:"room_id" binding:"required"`
	CheckIn         string `json:"check_in" binding:"required"`
	CheckOut        string `json:"check_out" binding:"required"`
	Guests          int    `json:"guests" binding:"required,min=1"`
	SpecialRequests string `json:"special_requests"`
}

type UpdateReservationRequest struct {
	CheckIn         *string `json:"check_in"`
	CheckOut        *string `json:"check_out"`
	Guests          *int    `json:"guests"`
	SpecialRequests *string `json:"special_requests"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

type ReservationListResponse struct {
	Reservations []domain.Reservation `json:"reservations"`
	Total        int64                `json:"total"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}
