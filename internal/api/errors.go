package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound marks a 404 from the backend. Only the customer resolver
	// treats it as an expected outcome; everywhere else it surfaces as-is.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a rejected state change or duplicate creation.
	// Never retried automatically.
	ErrConflict = errors.New("conflict")
)

// Error is a non-2xx response from the backend, carrying the status code and
// the backend's own message when one was returned.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Unwrap maps well-known status codes onto sentinel kinds so callers can use
// errors.Is without inspecting status codes themselves.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}
