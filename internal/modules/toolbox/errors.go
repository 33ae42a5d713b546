package toolbox

import "errors"

var (
	ErrEmptyList  = errors.New("list must not be empty")
	ErrNotSorted  = errors.New("list must be sorted in ascending order")
	ErrValidation = errors.New("validation error")
)
