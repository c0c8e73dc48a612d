// Package openmeteo implements the Open-Meteo API client: geocoding search,
// location resolution, and normalization of forecast and air-quality
// payloads into the typed records in internal/models.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/forgeworks/weather-mcp/internal/models"
	"github.com/forgeworks/weather-mcp/internal/observability"
)

// Production endpoint URLs.
const (
	DefaultGeocodingURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL   = "https://api.open-meteo.com/v1/forecast"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
)

// DefaultTimeout bounds each upstream request.
const DefaultTimeout = 30 * time.Second

// defaultGeocodeLimit is the result count requested when resolving a city
// to coordinates.
const defaultGeocodeLimit = 5

// Endpoint labels for metrics.
const (
	endpointGeocoding  = "geocoding"
	endpointForecast   = "forecast"
	endpointAirQuality = "air_quality"
)

// Units selects the measurement system for weather responses.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

// labels returns the unit-label set attached to responses. Open-Meteo does
// not convert pressure, so the pressure label is hPa in both systems.
func (u Units) labels() models.WeatherUnits {
	if u == Imperial {
		return models.WeatherUnits{
			Temperature:   "°F",
			WindSpeed:     "mph",
			Pressure:      "hPa",
			Precipitation: "in",
		}
	}
	return models.WeatherUnits{
		Temperature:   "°C",
		WindSpeed:     "km/h",
		Pressure:      "hPa",
		Precipitation: "mm",
	}
}

// apply sets the upstream unit overrides. Metric is the upstream default
// and needs none.
func (u Units) apply(params url.Values) {
	if u == Imperial {
		params.Set("temperature_unit", "fahrenheit")
		params.Set("wind_speed_unit", "mph")
		params.Set("precipitation_unit", "inch")
	}
}

// LocationRef selects how a lookup target is specified: by city name or by
// an exact coordinate pair. Exactly one variant is in play per request.
type LocationRef interface {
	isLocationRef()
}

// ByCity resolves the target through geocoding, optionally filtered by a
// country name or code.
type ByCity struct {
	City    string
	Country string
}

// ByCoordinates uses the given coordinates verbatim; no geocoding call is
// made.
type ByCoordinates struct {
	Latitude  float64
	Longitude float64
}

func (ByCity) isLocationRef()        {}
func (ByCoordinates) isLocationRef() {}

// NewLocationRef builds a LocationRef from optional tool parameters.
// A complete coordinate pair takes precedence over any city name. Returns
// ErrNoLocation when neither pathway is satisfied.
func NewLocationRef(city, country string, latitude, longitude *float64) (LocationRef, error) {
	if latitude != nil && longitude != nil {
		return ByCoordinates{Latitude: *latitude, Longitude: *longitude}, nil
	}
	if city == "" {
		return nil, ErrNoLocation
	}
	return ByCity{City: city, Country: country}, nil
}

// Endpoints overrides the Open-Meteo base URLs. Zero-value fields fall back
// to the production endpoints.
type Endpoints struct {
	Geocoding  string
	Forecast   string
	AirQuality string
}

// Client issues Open-Meteo queries and normalizes the responses. It holds
// no mutable state and is safe for concurrent use.
type Client struct {
	geocodingURL  string
	forecastURL   string
	airQualityURL string
	httpClient    *http.Client
}

// NewClient returns a client against the production endpoints.
func NewClient(timeout time.Duration) *Client {
	return NewClientWithEndpoints(Endpoints{}, timeout)
}

// NewClientWithEndpoints returns a client with endpoint overrides, used by
// tests and configuration.
func NewClientWithEndpoints(ep Endpoints, timeout time.Duration) *Client {
	if ep.Geocoding == "" {
		ep.Geocoding = DefaultGeocodingURL
	}
	if ep.Forecast == "" {
		ep.Forecast = DefaultForecastURL
	}
	if ep.AirQuality == "" {
		ep.AirQuality = DefaultAirQualityURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		geocodingURL:  ep.Geocoding,
		forecastURL:   ep.Forecast,
		airQualityURL: ep.AirQuality,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// request issues one GET and decodes the JSON payload into out. A non-2xx
// status becomes an *APIError carrying the status code and body; there is
// no retry at this layer.
func (c *Client) request(ctx context.Context, endpoint, rawURL string, params url.Values, out any) error {
	start := time.Now()

	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if corrID := extractCorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.OpenMeteoCallsTotal.WithLabelValues(endpoint, "error").Inc()
		observability.OpenMeteoDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	status := statusLabel(resp.StatusCode)
	observability.OpenMeteoCallsTotal.WithLabelValues(endpoint, status).Inc()
	observability.OpenMeteoDuration.WithLabelValues(endpoint, status).Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// Geocode searches for locations by city name. Results are sorted by
// population, highest first; the country filter is advisory and never
// empties a non-empty result set. An empty upstream result set returns an
// empty slice, not an error.
func (c *Client) Geocode(ctx context.Context, city, country string, limit int) ([]models.Location, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", strconv.Itoa(clamp(limit, 1, 10)))
	params.Set("language", "en")
	params.Set("format", "json")

	var data geocodeResponse
	if err := c.request(ctx, endpointGeocoding, c.geocodingURL, params, &data); err != nil {
		return nil, err
	}

	if len(data.Results) == 0 {
		return []models.Location{}, nil
	}

	locations := make([]models.Location, 0, len(data.Results))
	for _, r := range data.Results {
		tz := r.Timezone
		if tz == "" {
			tz = "UTC"
		}
		locations = append(locations, models.Location{
			Name:        r.Name,
			Country:     r.Country,
			CountryCode: r.CountryCode,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Timezone:    tz,
			Population:  int(valueOr(r.Population, 0)),
			Admin1:      r.Admin1,
		})
	}

	// Advisory country filter: keep the filtered set only when it is
	// non-empty, otherwise fall back to the full list.
	if country != "" {
		countryLower := strings.ToLower(country)
		filtered := make([]models.Location, 0, len(locations))
		for _, loc := range locations {
			if countryLower == strings.ToLower(loc.Country) || countryLower == strings.ToLower(loc.CountryCode) {
				filtered = append(filtered, loc)
			}
		}
		if len(filtered) > 0 {
			locations = filtered
		}
	}

	// Highest population first; absent population sorts as 0. Stable so
	// equal keys keep upstream order.
	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].Population > locations[j].Population
	})

	return locations, nil
}

// ResolveLocation turns a LocationRef into coordinates and a display name.
// Coordinates pass through verbatim with a "lat, lon" display name fixed to
// four decimals; city references geocode and pick the best (most populous)
// match.
func (c *Client) ResolveLocation(ctx context.Context, ref LocationRef) (lat, lon float64, displayName string, err error) {
	switch r := ref.(type) {
	case ByCoordinates:
		return r.Latitude, r.Longitude, fmt.Sprintf("%.4f, %.4f", r.Latitude, r.Longitude), nil
	case ByCity:
		if r.City == "" {
			return 0, 0, "", ErrNoLocation
		}
		locations, err := c.Geocode(ctx, r.City, r.Country, defaultGeocodeLimit)
		if err != nil {
			return 0, 0, "", err
		}
		if len(locations) == 0 {
			return 0, 0, "", fmt.Errorf("%w for %q", ErrLocationNotFound, r.City)
		}
		best := locations[0]
		return best.Latitude, best.Longitude, fmt.Sprintf("%s, %s", best.Name, best.Country), nil
	default:
		return 0, 0, "", ErrNoLocation
	}
}

func extractCorrelationID(ctx context.Context) string {
	if v := ctx.Value("correlation_id"); v != nil {
		if corrID, ok := v.(string); ok {
			return corrID
		}
	}
	return ""
}

func statusLabel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "success"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	default:
		return "error"
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
