package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Provider failures fall into five types. examgen.Classify maps them onto
// the user-facing exam errors; RetryProvider uses them to decide whether a
// call is worth repeating.

// ErrRateLimit is a 429. RetryAfter is zero when the server gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm: rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is a reply that is not the requested JSON. Content
// holds the raw reply for the event log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string { return fmt.Sprintf("llm: invalid reply: %v", e.Err) }

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers outages, network errors and any API error
// without a more specific type.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm: provider unavailable"
	}
	return fmt.Sprintf("llm: provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a reply cut off by the output limit before it
// became valid JSON.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string { return "llm: reply truncated at the token limit" }

// ErrAuthentication is a rejected or missing API key.
type ErrAuthentication struct {
	StatusCode int
	Err        error
}

func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("llm: credentials rejected (status %d): %v", e.StatusCode, e.Err)
}

func (e *ErrAuthentication) Unwrap() error { return e.Err }

// isAuthFailure reports whether a status and message describe a key
// problem. Gemini answers a bad key with 400 "API key not valid".
func isAuthFailure(status int, msg string) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	case http.StatusBadRequest:
		m := strings.ToLower(msg)
		return strings.Contains(m, "api key") || strings.Contains(m, "api_key")
	}
	return false
}
