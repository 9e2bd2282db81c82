package exam

import "errors"

// User-facing failure kinds. Validation kinds are reported before any
// network call; credential and service kinds come from classifying a
// failed generation call.
var (
	ErrEmptySelection     = errors.New("no lessons selected")
	ErrInvalidRatio       = errors.New("biet + hieu ratio exceeds 100%")
	ErrEmptyQuestionSet   = errors.New("no questions requested")
	ErrMissingCredential  = errors.New("API key is not configured")
	ErrInvalidCredential  = errors.New("API key was rejected")
	ErrServiceUnavailable = errors.New("generation service unavailable")
)

// ErrMalformedResponse means the model output was not a JSON array. It is
// surfaced to users as ErrServiceUnavailable.
var ErrMalformedResponse = errors.New("malformed model response")

// ErrBusy is returned when a generation is requested while one is in flight.
var ErrBusy = errors.New("generation already in progress")

// ErrQuestionPosition is returned by Document.Replace for an out-of-range
// position.
var ErrQuestionPosition = errors.New("question position out of range")
