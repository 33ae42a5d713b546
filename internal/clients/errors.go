package clients

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("upstream resource not found")

// UpstreamError carries the error envelope returned by another service.
type UpstreamError struct {
	Status  int
	Code    string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d %s: %s", e.Status, e.Code, e.Message)
}
