package notification

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("notification not found")
	ErrForbidden       = errors.New("operation not allowed for this user")
	ErrUnsupportedType = errors.New("unsupported notification type")
)
