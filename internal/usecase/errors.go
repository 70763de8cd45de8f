package usecase

import "errors"

// Tile loading failures. Returned errors wrap one of these together with the
// underlying cause, so match them with errors.Is.
var (
	ErrNetwork      = errors.New("network error")
	ErrDoesNotExist = errors.New("tile does not exist")
	ErrDecoding     = errors.New("failed to decode tile")
)

// Retryable reports whether a later attempt to load the same tile may succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrNetwork)
}
