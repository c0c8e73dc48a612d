package openmeteo

import (
	"errors"
	"fmt"
)

// ErrNoLocation is returned when neither a city name nor a coordinate pair
// was supplied. The message is surfaced verbatim to the caller.
var ErrNoLocation = errors.New("Provide either city name or latitude/longitude coordinates")

// ErrLocationNotFound is returned when a city-based lookup geocoded to zero
// results. Wrapped with the offending query string.
var ErrLocationNotFound = errors.New("no location found")

// APIError is a non-2xx response from an Open-Meteo endpoint. It carries
// the status code and the raw response body; it is never retried.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %d %s", e.StatusCode, e.Body)
}
