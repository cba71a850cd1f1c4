package storeapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed call to the store API.
type Kind string

const (
	// KindTransport covers network failures and timeouts; no response was read.
	KindTransport Kind = "transport"
	// KindStatus covers non-2xx responses.
	KindStatus Kind = "status"
	// KindDecode covers 2xx responses whose body has an unexpected shape.
	KindDecode Kind = "decode"
)

var (
	ErrNotFound     = errors.New("store api: not found")
	ErrUnauthorized = errors.New("store api: unauthorized")
	ErrForbidden    = errors.New("store api: forbidden")

	// ErrInvalidPathSegment rejects empty and dot path segments before any
	// request is sent.
	ErrInvalidPathSegment = errors.New("store api: invalid path segment")
)

// Error describes a failed call. Callers use errors.Is with the sentinels
// above or inspect Kind and StatusCode directly.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("store api %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("store api %s %s: status %d", e.Method, e.Path, e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("store api %s %s: malformed response: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("store api %s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the status sentinels.
func (e *Error) Is(target error) bool {
	if e.Kind != KindStatus {
		return false
	}
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	default:
		return false
	}
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindStatus {
		return apiErr.StatusCode
	}
	return 0
}
