package client

import "net/http"

// retryAction is the outcome of classifying one attempt against the
// upstream API.
type retryAction int

const (
	// actionSucceed means the attempt returned 2xx; stop and parse the body.
	actionSucceed retryAction = iota
	// actionRetry means the failure was transient (503 or a network error)
	// and attempts remain; back off and go again.
	actionRetry
	// actionFailPermanent means upstream rejected the request with a
	// non-503 error status; retrying will not help.
	actionFailPermanent
	// actionExhausted means the failure was transient but this was the
	// last attempt.
	actionExhausted
)

// decideRetry classifies one attempt's outcome. It is a pure function of
// the attempt number, the HTTP status, and whether a network-level error
// occurred, so the retry policy can be tested without real delays.
//
// Network errors and 503 responses are transient; any other non-2xx status
// is permanent and surfaces immediately with the upstream status and body.
func decideRetry(attempt, maxAttempts, status int, netErr error) retryAction {
	if netErr != nil {
		if attempt < maxAttempts {
			return actionRetry
		}
		return actionExhausted
	}

	switch {
	case status >= 200 && status < 300:
		return actionSucceed
	case status == http.StatusServiceUnavailable:
		if attempt < maxAttempts {
			return actionRetry
		}
		return actionExhausted
	default:
		return actionFailPermanent
	}
}
