package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an authorized request is attempted
	// before any session has been established
	ErrNotAuthenticated = errors.New("not authenticated, login first")

	// ErrTokenExpired is returned when the session is inside the expiry buffer
	// or the API answered 401. Callers re-authenticate and retry.
	ErrTokenExpired = errors.New("authentication token expired, login again")

	// ErrInvalidResponse is returned when the transport produced no HTTP response
	ErrInvalidResponse = errors.New("invalid response from server")

	ErrNoNextAlarm    = errors.New("no next alarm found")
	ErrDeviceNotFound = errors.New("no Eight Sleep device found")
	ErrUserNotFound   = errors.New("user not found")
)

// AuthenticationError is returned when the token exchange is rejected
type AuthenticationError struct {
	StatusCode int
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed with status code: %d", e.StatusCode)
}

// APIError carries a non-2xx API response verbatim
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("API request failed with status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed with status code: %d: %s", e.StatusCode, truncate(string(e.Body), 256))
}

// DecodingError wraps a response body that did not match the expected schema
type DecodingError struct {
	Target string // name of the response type being decoded
	Err    error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Target, e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// InvalidURLError is returned when an endpoint URL cannot be built
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Err
}

// InvalidSideError is returned when a bed side string is not solo, left or right
type InvalidSideError struct {
	Side string
}

func (e *InvalidSideError) Error() string {
	return fmt.Sprintf("invalid bed side: %s. Must be 'solo', 'left', or 'right'", e.Side)
}

// StorageError wraps failures of the local session cache
type StorageError struct {
	Path string
	Op   string // "open", "read", "write"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status carried by an error, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.StatusCode
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
