package icu

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed API call so callers can react per kind
// instead of parsing error strings.
type ErrorKind int

const (
	// KindInvalidParameter is raised by callers before any network call is
	// attempted (malformed dates, missing ids).
	KindInvalidParameter ErrorKind = iota
	// KindUnauthorized covers 401 and 403: credentials invalid, expired,
	// or lacking permission.
	KindUnauthorized
	// KindNotFound covers 404: the endpoint or id does not exist for this
	// athlete.
	KindNotFound
	// KindRateLimited covers 429. The client never retries; the caller
	// should report and back off.
	KindRateLimited
	// KindUpstream covers 5xx and any other unexpected status.
	KindUpstream
	// KindNetwork means the request failed before a response was received
	// (connection refused, timeout, cancellation).
	KindNetwork
	// KindMalformed means a 2xx response carried a body that could not be
	// decoded as JSON.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindUpstream:
		return "upstream_error"
	case KindNetwork:
		return "network_error"
	case KindMalformed:
		return "malformed_response"
	}
	return "unknown"
}

// APIError is the classified result of a failed call.
type APIError struct {
	Kind       ErrorKind
	StatusCode int    // zero when no response was received
	Detail     string // caller-supplied text for KindInvalidParameter
	Err        error  // wrapped transport error for KindNetwork
}

func (e *APIError) Error() string { return e.Message() }

func (e *APIError) Unwrap() error { return e.Err }

// Message returns the fixed, user-facing text for this error kind. The AI
// client relies on these being distinguishable per kind.
func (e *APIError) Message() string {
	switch e.Kind {
	case KindInvalidParameter:
		return e.Detail
	case KindUnauthorized:
		if e.StatusCode == http.StatusForbidden {
			return "403 Forbidden: you may not have permission to access this resource."
		}
		return "401 Unauthorized: please check your API key."
	case KindNotFound:
		return "404 Not Found: the requested endpoint or ID doesn't exist."
	case KindRateLimited:
		return "429 Too Many Requests: too many requests in a short time period."
	case KindUpstream:
		return fmt.Sprintf("%d %s: the intervals.icu server couldn't complete the request, try again later.",
			e.StatusCode, http.StatusText(e.StatusCode))
	case KindNetwork:
		if e.Err != nil {
			return fmt.Sprintf("Request error: %v", e.Err)
		}
		return "Request error: connection failed."
	case KindMalformed:
		return "Invalid JSON in response from intervals.icu."
	}
	return "Unknown error."
}

// invalidParam builds a pre-dispatch caller error.
func invalidParam(format string, args ...any) *APIError {
	return &APIError{Kind: KindInvalidParameter, Detail: fmt.Sprintf(format, args...)}
}

// classify maps a non-2xx HTTP status to its error kind. Total over the
// documented set; anything undocumented counts as an upstream failure.
func classify(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindUpstream
	}
}
