package remo

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned before any network call when no access token
// is configured.
var ErrMissingAPIKey = errors.New("NATURE_REMO_API_KEY is not configured")

// RequestError is returned when the vendor answers with a non-2xx status.
type RequestError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed: %s - %s", e.Status, e.Body)
}
