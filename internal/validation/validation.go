// Package validation checks tool inputs before any upstream call is made.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Maximum city name length in runes. Open-Meteo truncates longer queries.
const maxCityLen = 100

// ErrCityEmpty is returned when the city is empty or whitespace-only after trim.
var ErrCityEmpty = errors.New("city name is required")

// ErrCityTooLong is returned when the city name exceeds the maximum length.
var ErrCityTooLong = errors.New("city name too long")

// ErrCityInvalidChars is returned when the city contains disallowed characters.
var ErrCityInvalidChars = errors.New("city name contains invalid characters")

// ErrLatitudeRange is returned for latitudes outside [-90, 90].
var ErrLatitudeRange = errors.New("latitude must be between -90 and 90")

// ErrLongitudeRange is returned for longitudes outside [-180, 180].
var ErrLongitudeRange = errors.New("longitude must be between -180 and 180")

// ErrInvalidUnits is returned for a units value other than metric or imperial.
var ErrInvalidUnits = errors.New(`units must be "metric" or "imperial"`)

// ValidateCity trims the input, enforces the length bound, and restricts to
// letters (Unicode), digits, space, comma, period, apostrophe, and hyphen.
// Returns the trimmed string.
func ValidateCity(input string) (string, error) {
	s := strings.TrimSpace(input)
	r := []rune(s)
	if len(r) == 0 {
		return "", ErrCityEmpty
	}
	if len(r) > maxCityLen {
		return "", ErrCityTooLong
	}
	for _, c := range r {
		if !isAllowedCityRune(c) {
			return "", ErrCityInvalidChars
		}
	}
	return s, nil
}

// isAllowedCityRune covers names like "Coeur d'Alene" and "St. Louis".
func isAllowedCityRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-', '.', '\'':
		return true
	}
	return false
}

// ValidateCoordinates checks the coordinate ranges. Both pointers must be
// non-nil; callers pass a pair only when both parameters were supplied.
func ValidateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w, got %v", ErrLatitudeRange, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w, got %v", ErrLongitudeRange, longitude)
	}
	return nil
}

// ValidateUnits normalizes the units parameter. Empty defaults to metric.
func ValidateUnits(units string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(units))
	switch u {
	case "":
		return "metric", nil
	case "metric", "imperial":
		return u, nil
	default:
		return "", fmt.Errorf("%w, got %q", ErrInvalidUnits, units)
	}
}
