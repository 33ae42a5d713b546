package domain

import "time"

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentProcessing        PaymentStatus = "processing"
	PaymentCompleted         PaymentStatus = "completed"
	PaymentFailed            PaymentStatus = "failed"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodPayPal     PaymentMethod = "paypal"
	MethodStripe     PaymentMethod = "stripe"
)

type Payment struct {
	ID             int64         `json:"id"`
	ReservationID  int64         `json:"reservation_id"`
	UserID         int64         `json:"user_id"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	Method         PaymentMethod `json:"method"`
	Status         PaymentStatus `json:"status"`
	TransactionID  string        `json:"transaction_id,omitempty"`
	FailureReason  string        `json:"failure_reason,omitempty"`
	RefundedAmount float64       `json:"refunded_amount,omitempty"`
	RefundedAt     *time.Time    `json:"refunded_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
