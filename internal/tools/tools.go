// Package tools exposes the weather lookups as MCP tools. Each handler
// validates its input, resolves the location reference, and delegates to the
// Open-Meteo client; results are serialized from the typed records in
// internal/models.
package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/forgeworks/weather-mcp/internal/models"
	"github.com/forgeworks/weather-mcp/internal/observability"
	"github.com/forgeworks/weather-mcp/internal/openmeteo"
	"github.com/forgeworks/weather-mcp/internal/validation"
)

const serverName = "Weather Server"

// Version is the service version reported over MCP.
const Version = "0.2.0"

const instructions = `Weather information server powered by Open-Meteo API.

Available tools:
- geocode: Search for locations by city name
- get_current_weather: Get current weather conditions
- get_forecast: Get weather forecast (daily/hourly)
- get_air_quality: Get air quality and pollutant data

Location can be specified by city name (with optional country) or coordinates.
When using city names, the server automatically picks the most likely match by population.
`

// Handler holds the dependencies shared by all tool handlers.
type Handler struct {
	client *openmeteo.Client
	logger *zap.Logger
}

// NewHandler wires the tool handlers to an Open-Meteo client.
func NewHandler(client *openmeteo.Client, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{client: client, logger: logger}
}

// NewServer builds the MCP server with all four weather tools registered.
func NewServer(h *Handler) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: Version,
	}, &mcp.ServerOptions{
		Instructions: instructions,
	})

	mcp.AddTool(server, &mcp.Tool{
		Name: "geocode",
		Description: "Search for locations by city name. Returns a list of matching locations " +
			"with coordinates, sorted by population. Use this to find the exact coordinates of a " +
			"city before querying weather data, or to disambiguate cities with common names " +
			"(e.g., 'Springfield', 'London').",
	}, h.Geocode)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_current_weather",
		Description: "Get current weather conditions for a location. Provide either a city " +
			"(optionally with country for disambiguation) or latitude and longitude coordinates.",
	}, h.GetCurrentWeather)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_forecast",
		Description: "Get weather forecast for a location. Returns daily forecast by default; " +
			"set hourly=true for an hourly breakdown in addition.",
	}, h.GetForecast)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_air_quality",
		Description: "Get air quality and pollutant data for a location: US EPA and European " +
			"air quality indexes with categories, pollutant concentrations (PM2.5, PM10, O3, " +
			"NO2, SO2, CO), and optional pollen levels (Europe only).",
	}, h.GetAirQuality)

	return server
}

// GeocodeInput are the parameters for the geocode tool.
type GeocodeInput struct {
	City    string `json:"city" jsonschema:"City name to search (e.g., 'Berlin', 'New York')"`
	Country string `json:"country,omitempty" jsonschema:"Country name or code to filter results (e.g., 'Germany', 'DE', 'US')"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return, 1-10 (default 5)"`
}

// GeocodeOutput wraps the location list in an object, as required for
// structured tool results.
type GeocodeOutput struct {
	Locations []models.Location `json:"locations"`
}

// Geocode searches for locations by city name.
func (h *Handler) Geocode(ctx context.Context, _ *mcp.CallToolRequest, in GeocodeInput) (*mcp.CallToolResult, GeocodeOutput, error) {
	done := h.observe("geocode")

	city, err := validation.ValidateCity(in.City)
	if err != nil {
		return nil, GeocodeOutput{}, done(err)
	}

	limit := in.Limit
	if limit == 0 {
		limit = 5
	}

	locations, err := h.client.Geocode(ctx, city, in.Country, limit)
	if err != nil {
		return nil, GeocodeOutput{}, done(err)
	}
	return nil, GeocodeOutput{Locations: locations}, done(nil)
}

// locationParams are the shared location fields of the weather tools.
type locationParams struct {
	City      string   `json:"city,omitempty" jsonschema:"City name (e.g., 'Berlin', 'Tokyo')"`
	Country   string   `json:"country,omitempty" jsonschema:"Country name or code (e.g., 'Germany', 'JP')"`
	Latitude  *float64 `json:"latitude,omitempty" jsonschema:"Latitude coordinate, -90 to 90"`
	Longitude *float64 `json:"longitude,omitempty" jsonschema:"Longitude coordinate, -180 to 180"`
}

// ref validates the location fields and builds the location reference.
// A complete coordinate pair takes precedence over a city name.
func (p locationParams) ref() (openmeteo.LocationRef, error) {
	if p.Latitude != nil && p.Longitude != nil {
		if err := validation.ValidateCoordinates(*p.Latitude, *p.Longitude); err != nil {
			return nil, err
		}
		return openmeteo.ByCoordinates{Latitude: *p.Latitude, Longitude: *p.Longitude}, nil
	}
	if p.City == "" {
		return nil, openmeteo.ErrNoLocation
	}
	city, err := validation.ValidateCity(p.City)
	if err != nil {
		return nil, err
	}
	return openmeteo.ByCity{City: city, Country: p.Country}, nil
}

// CurrentWeatherInput are the parameters for the get_current_weather tool.
type CurrentWeatherInput struct {
	locationParams
	Units string `json:"units,omitempty" jsonschema:"Unit system: 'metric' (°C, km/h) or 'imperial' (°F, mph); default metric"`
}

// GetCurrentWeather returns current conditions for a location.
func (h *Handler) GetCurrentWeather(ctx context.Context, _ *mcp.CallToolRequest, in CurrentWeatherInput) (*mcp.CallToolResult, models.CurrentWeather, error) {
	done := h.observe("get_current_weather")

	ref, err := in.ref()
	if err != nil {
		return nil, models.CurrentWeather{}, done(err)
	}
	units, err := parseUnits(in.Units)
	if err != nil {
		return nil, models.CurrentWeather{}, done(err)
	}

	weather, err := h.client.GetCurrentWeather(ctx, ref, units)
	if err != nil {
		return nil, models.CurrentWeather{}, done(err)
	}
	observability.RecordWeatherQuery(in.City)
	return nil, *weather, done(nil)
}

// ForecastInput are the parameters for the get_forecast tool.
type ForecastInput struct {
	locationParams
	Days   int    `json:"days,omitempty" jsonschema:"Number of forecast days, 1-16 (default 7)"`
	Hourly bool   `json:"hourly,omitempty" jsonschema:"Include hourly breakdown in addition to daily forecast"`
	Units  string `json:"units,omitempty" jsonschema:"Unit system: 'metric' (°C, km/h) or 'imperial' (°F, mph); default metric"`
}

// GetForecast returns a daily forecast, with hourly entries when requested.
func (h *Handler) GetForecast(ctx context.Context, _ *mcp.CallToolRequest, in ForecastInput) (*mcp.CallToolResult, models.Forecast, error) {
	done := h.observe("get_forecast")

	ref, err := in.ref()
	if err != nil {
		return nil, models.Forecast{}, done(err)
	}
	units, err := parseUnits(in.Units)
	if err != nil {
		return nil, models.Forecast{}, done(err)
	}

	days := in.Days
	if days == 0 {
		days = 7
	}

	forecast, err := h.client.GetForecast(ctx, ref, days, in.Hourly, units)
	if err != nil {
		return nil, models.Forecast{}, done(err)
	}
	observability.RecordWeatherQuery(in.City)
	return nil, *forecast, done(nil)
}

// AirQualityInput are the parameters for the get_air_quality tool.
type AirQualityInput struct {
	locationParams
	IncludePollen bool `json:"include_pollen,omitempty" jsonschema:"Include pollen data (only available for European locations)"`
}

// GetAirQuality returns air quality indexes and pollutant concentrations.
func (h *Handler) GetAirQuality(ctx context.Context, _ *mcp.CallToolRequest, in AirQualityInput) (*mcp.CallToolResult, models.AirQuality, error) {
	done := h.observe("get_air_quality")

	ref, err := in.ref()
	if err != nil {
		return nil, models.AirQuality{}, done(err)
	}

	aq, err := h.client.GetAirQuality(ctx, ref, in.IncludePollen)
	if err != nil {
		return nil, models.AirQuality{}, done(err)
	}
	observability.RecordWeatherQuery(in.City)
	return nil, *aq, done(nil)
}

func parseUnits(units string) (openmeteo.Units, error) {
	u, err := validation.ValidateUnits(units)
	if err != nil {
		return "", err
	}
	return openmeteo.Units(u), nil
}

// observe starts the call timer and returns a completion func that records
// the tool metrics and logs the outcome. It passes the error through so
// handlers can record and return in one statement.
func (h *Handler) observe(tool string) func(error) error {
	start := time.Now()
	return func(err error) error {
		elapsed := time.Since(start)
		observability.ToolCallDuration.WithLabelValues(tool).Observe(elapsed.Seconds())

		status := "success"
		if err != nil {
			status = string(openmeteo.CategorizeError(err))
		}
		observability.ToolCallsTotal.WithLabelValues(tool, status).Inc()

		if err != nil {
			h.logger.Warn("tool call failed",
				zap.String("tool", tool),
				zap.String("category", status),
				zap.Duration("duration", elapsed),
				zap.Error(err))
			// Error text reaches the caller as-is; no prefix.
			return err
		}
		h.logger.Debug("tool call completed",
			zap.String("tool", tool),
			zap.Duration("duration", elapsed))
		return nil
	}
}
