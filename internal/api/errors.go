package api

import (
	"fmt"
	"strings"
)

// FetchError reports a failed call to a remote data service: a transport
// failure, a non-2xx status, or an undecodable body.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NoWorldError is returned when no world is flagged as main.
type NoWorldError struct{}

func (e *NoWorldError) Error() string {
	return "no main world found"
}

// AmbiguousWorldError is returned when more than one world is flagged as main.
type AmbiguousWorldError struct {
	Names []string
}

func (e *AmbiguousWorldError) Error() string {
	return fmt.Sprintf("multiple main worlds: %s", strings.Join(e.Names, ", "))
}
