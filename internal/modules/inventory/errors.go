package inventory

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("operation not allowed for this user")
)
