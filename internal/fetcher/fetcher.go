// Package fetcher downloads ad pages for phone extraction.
package fetcher

import (
	"context"
	"errors"
	"net"
)

// Fetcher defines the interface for downloading a page as text.
type Fetcher interface {
	// FetchHTML fetches the URL and returns its body decoded as UTF-8.
	FetchHTML(ctx context.Context, url string) (string, error)
}

// TransportError marks a network-level failure: connection errors, HTTP
// error statuses, timeouts and truncated bodies. Callers treat it as
// "nothing found" rather than as a failure of their own.
type TransportError struct {
	Err        error
	StatusCode int
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a transport failure with an optional HTTP status code.
func NewTransportError(err error, statusCode int) *TransportError {
	return &TransportError{Err: err, StatusCode: statusCode}
}

// IsTransport returns true if the error (or any error in its chain) is a
// TransportError, a network error, or a context deadline.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
