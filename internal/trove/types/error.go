package types

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAPIKeyMissing means the server was started without a Trove API key.
	ErrAPIKeyMissing = errors.New("API key not configured")
	// ErrEmptyQuery means the caller supplied an empty or whitespace-only query.
	ErrEmptyQuery = errors.New("search query is required")
	// ErrInvalidAPIHost means the client configuration has no upstream host.
	ErrInvalidAPIHost = errors.New("invalid API host")
)

// UpstreamError reports a failed upstream call after the retry loop has
// finished with it, carrying the last observed status and attempt count.
type UpstreamError struct {
	StatusCode int
	Attempts   int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("trove api: %s (status %d, %d attempts)", e.Detail, e.StatusCode, e.Attempts)
}

// Temporary reports whether the failure was upstream unavailability rather
// than a permanent rejection.
func (e *UpstreamError) Temporary() bool {
	return e.StatusCode == http.StatusServiceUnavailable
}
