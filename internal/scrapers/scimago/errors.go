package scimago

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned (possibly wrapping a more specific cause) by every
	// lookup that could not produce a result.
	ErrNotFound = errors.New("scimago: not found")
	// ErrPageLimit means the ranking listing was scanned up to the page ceiling without a match.
	ErrPageLimit = errors.New("scimago: page limit reached")
	// ErrEmptyQuery means a required query field was blank.
	ErrEmptyQuery = errors.New("scimago: empty query")
)

func notFound(cause error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, cause)
}

// FetchError is a transport failure or an unexpected status code.
type FetchError struct {
	Url string
	// StatusCode is set when the request completed with a non-200 status.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: status %d", e.Url, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s", e.Url, e.Err.Error())
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TimeoutError is a request that did not complete within the configured timeout.
type TimeoutError struct {
	Url     string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch %s: timed out after %s", e.Url, e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}
