package news

import (
	"errors"
	"fmt"
)

// ErrUnexpectedFormat is returned when the response body shape is not recognized.
var ErrUnexpectedFormat = errors.New("unexpected data format")

// FetchError is returned when the endpoint could not be read.
type FetchError struct {
	StatusCode int // zero for transport failures
	Cause      error
}

// Error implements error.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch articles: bad status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("fetch articles: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Cause }
