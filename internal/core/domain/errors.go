package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals the requested entity does not exist server-side.
	ErrNotFound = errors.New("not found")
	// ErrAuthExpired signals the backend rejected the session token. It is
	// handled globally (session teardown), never per call site.
	ErrAuthExpired = errors.New("session expired")
	// ErrSubmitInFlight rejects a public-registration submit while a
	// previous one for the same form is still pending.
	ErrSubmitInFlight = errors.New("registration already being submitted")
)

// ValidationError reports client-side input problems detected before any
// network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// APIError is a request that failed on the wire or came back non-2xx.
// Status is zero when the request never reached the server. Message carries
// the server-provided text when one was sent, otherwise a generic fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Unwrap maps well-known statuses onto their sentinel so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case 401:
		return ErrAuthExpired
	case 404:
		return ErrNotFound
	}
	return nil
}

// ImageLoadError reports that the scannable code graphic could not be
// rasterized during QR card composition.
type ImageLoadError struct {
	Cause error
}

func (e *ImageLoadError) Error() string {
	if e.Cause == nil {
		return "failed to load QR code graphic"
	}
	return "failed to load QR code graphic: " + e.Cause.Error()
}

func (e *ImageLoadError) Unwrap() error { return e.Cause }
