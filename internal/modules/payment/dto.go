package payment

import "hotelreserve/internal/domain"

type CreatePaymentRequest struct {
	ReservationID int64   `json:"reservation_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Currency      string  `json:"currency"`
	Method        string  `json:"method" binding:"required"`
}

type RefundRequest struct {
	// Amount of 0 means a full refund.
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

type PaymentListResponse struct {
	Payments []domain.Payment `json:"payments"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}
