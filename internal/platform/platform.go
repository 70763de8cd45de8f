// Package platform fetches raw tile bytes from the outside world.
package platform

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound reports that the requested resource does not exist upstream.
// Every other fetch failure is reported with a different error.
var ErrNotFound = errors.New("resource not found")

// Platform is the byte source tile loaders fetch from.
type Platform interface {
	LoadBytesFromURL(ctx context.Context, url string) ([]byte, error)
}

// StatusError is returned for unexpected non-2xx upstream responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d for %s", e.StatusCode, e.URL)
}
