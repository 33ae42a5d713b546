package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("reservation not found")
	ErrForbidden               = errors.New("operation not allowed for this user")
	ErrNotAvailable            = errors.New("room is not available for the selected dates")
	ErrCapacityExceeded        = errors.New("guest count exceeds room capacity")
	ErrPastCheckIn             = errors.New("check-in date must be in the future")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrAlreadyStarted          = errors.New("stay has already started")
)
