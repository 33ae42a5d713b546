package payment

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("payment not found")
	ErrForbidden         = errors.New("operation not allowed for this user")
	ErrAmountMismatch    = errors.New("payment amount does not match reservation total")
	ErrAlreadyPaid       = errors.New("reservation already has a completed payment")
	ErrNotRefundable     = errors.New("payment is not in a refundable state")
	ErrRefundTooLarge    = errors.New("refund exceeds the remaining paid amount")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
)
