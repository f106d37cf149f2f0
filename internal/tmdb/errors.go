package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNotFound matches any *NotFoundError through errors.Is.
var ErrNotFound = errors.New("tmdb: not found")

// ErrNoImageAvailable is returned by PickBackdrop when the image set has
// no backdrops.
var ErrNoImageAvailable = errors.New("tmdb: no backdrop available")

// UpstreamError reports a transport failure or a non-2xx response.
// StatusCode is zero when no response was received.
type UpstreamError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string // first bytes of the response body, for logs
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb: %s: HTTP %d for %s", e.Op, e.StatusCode, e.URL)
	}
	return fmt.Sprintf("tmdb: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Timeout reports whether the request failed because a deadline passed,
// either the client timeout or the caller's context.
func (e *UpstreamError) Timeout() bool {
	if e.Err == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// NotFoundError is returned when upstream answers 404.
type NotFoundError struct {
	Op  string
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tmdb: %s: not found: %s", e.Op, e.URL)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MalformedResponseError is returned when a 2xx body is not valid JSON or
// lacks a field the caller depends on.
type MalformedResponseError struct {
	Op  string
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("tmdb: %s: malformed response from %s: %v", e.Op, e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
