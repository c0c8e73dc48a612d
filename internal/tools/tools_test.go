package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forgeworks/weather-mcp/internal/openmeteo"
)

const geocodeFixture = `{
	"results": [
		{
			"name": "Berlin",
			"country": "Germany",
			"country_code": "DE",
			"latitude": 52.52437,
			"longitude": 13.41053,
			"timezone": "Europe/Berlin",
			"population": 3426354,
			"admin1": "Land Berlin"
		}
	]
}`

const currentWeatherFixture = `{
	"timezone": "Europe/Berlin",
	"current": {
		"time": "2025-12-14T11:30",
		"temperature_2m": 5.9,
		"relative_humidity_2m": 82,
		"apparent_temperature": 2.7,
		"weather_code": 2,
		"wind_speed_10m": 11.0,
		"wind_direction_10m": 221,
		"pressure_msl": 1025.5
	}
}`

const forecastFixture = `{
	"timezone": "Europe/Berlin",
	"daily": {
		"time": ["2025-12-14", "2025-12-15"],
		"temperature_2m_max": [7.2, 6.1],
		"temperature_2m_min": [4.6, 3.2],
		"apparent_temperature_max": [4.1, 2.9],
		"apparent_temperature_min": [1.2, 0.1],
		"precipitation_sum": [0.3, 0.0],
		"precipitation_probability_max": [35, 20],
		"weather_code": [3, 61],
		"sunrise": ["2025-12-14T08:10", "2025-12-15T08:11"],
		"sunset": ["2025-12-14T15:51", "2025-12-15T15:51"],
		"wind_speed_10m_max": [14.8, 12.2]
	}
}`

const airQualityFixture = `{
	"timezone": "Europe/Berlin",
	"current": {
		"time": "2025-12-14T11:00",
		"us_aqi": 57,
		"european_aqi": 31,
		"pm10": 15.4,
		"pm2_5": 13.6,
		"carbon_monoxide": 253.0,
		"nitrogen_dioxide": 18.7,
		"sulphur_dioxide": 3.2,
		"ozone": 35.0
	}
}`

// newTestSession wires the tool server to a fake Open-Meteo upstream and
// connects an in-memory MCP client.
func newTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geocodeFixture))
	})
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("daily") != "" {
			_, _ = w.Write([]byte(forecastFixture))
			return
		}
		_, _ = w.Write([]byte(currentWeatherFixture))
	})
	mux.HandleFunc("/v1/air-quality", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(airQualityFixture))
	})
	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	client := openmeteo.NewClientWithEndpoints(openmeteo.Endpoints{
		Geocoding:  upstream.URL + "/v1/search",
		Forecast:   upstream.URL + "/v1/forecast",
		AirQuality: upstream.URL + "/v1/air-quality",
	}, 2*time.Second)

	server := NewServer(NewHandler(client, zap.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(ctx, serverTransport)
	}()

	mcpClient := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := mcpClient.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
		cancel()
		<-errCh
	})
	return session
}

func args(t *testing.T, v any) map[string]json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestListTools(t *testing.T) {
	session := newTestSession(t)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"geocode",
		"get_current_weather",
		"get_forecast",
		"get_air_quality",
	}, names)
}

func TestGeocodeTool(t *testing.T) {
	session := newTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "geocode",
		Arguments: args(t, map[string]any{"city": "Berlin"}),
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out struct {
		Locations []struct {
			Name       string `json:"name"`
			Country    string `json:"country"`
			Population int    `json:"population"`
		} `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(structuredJSON(t, result), &out))
	require.Len(t, out.Locations, 1)
	assert.Equal(t, "Berlin", out.Locations[0].Name)
	assert.Equal(t, "Germany", out.Locations[0].Country)
	assert.Equal(t, 3426354, out.Locations[0].Population)
}

func TestGeocodeTool_MissingCity(t *testing.T) {
	session := newTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "geocode",
		Arguments: args(t, map[string]any{"city": "  "}),
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "city name is required")
}

func TestGetCurrentWeatherTool(t *testing.T) {
	session := newTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_current_weather",
		Arguments: args(t, map[string]any{"city": "Berlin"}),
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out struct {
		Location             string  `json:"location"`
		Temperature          float64 `json:"temperature"`
		WeatherDescription   string  `json:"weather_description"`
		WindDirectionCompass string  `json:"wind_direction_compass"`
		Units                struct {
			Temperature string `json:"temperature"`
		} `json:"units"`
	}
	require.NoError(t, json.Unmarshal(structuredJSON(t, result), &out))
	assert.Equal(t, "Berlin, Germany", out.Location)
	assert.Equal(t, 5.9, out.Temperature)
	assert.Equal(t, "Partly cloudy", out.WeatherDescription)
	assert.Equal(t, "SW", out.WindDirectionCompass)
	assert.Equal(t, "°C", out.Units.Temperature)
}

func TestGetCurrentWeatherTool_ByCoordinates(t *testing.T) {
	session := newTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_current_weather",
		Arguments: args(t, map[string]any{"latitude": 52.52, "longitude": 13.41}),
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out struct {
		Location string `json:"location"`
	}
	require.NoError(t, json.Unmarshal(structuredJSON(t, result), &out))
	assert.Equal(t, "52.5200, 13.4100", out.Location)
}

func TestGetCurrentWeatherTool_NoLocation(t *testing.T) {
	session := newTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_current_weather",
		Arguments: args(t, map[string]any{}),
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "Provide either city name or latitude/longitude coordinates")
}

func TestGetCurrentWeatherTool_InvalidInputs(t *testing.T) {
	session := newTestSession(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{"latitude out of range", map[string]any{"latitude": 95.0, "longitude": 13.41}, "latitude must be between -90 and 90"},
		{"longitude out of range", map[string]any{"latitude": 52.52, "longitude": 200.0}, "longitude must be between -180 and 180"},
		{"bad units", map[string]any{"city": "Berlin", "units": "kelvin"}, "units must be"},
		{"latitude alone falls through to city check", map[string]any{"latitude": 52.52}, "Provide either"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      "get_current_weather",
				Arguments: args(t, tc.args),
			})
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, textContent(t, result), tc.wantMsg)
		})
	}
}

func TestGetForecastTool(t *testing.T) {
	session := newTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_forecast",
		Arguments: args(t, map[string]any{"city": "Berlin", "days": 2}),
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out struct {
		Location string `json:"location"`
		Daily    []struct {
			Date               string `json:"date"`
			WeatherDescription string `json:"weather_description"`
			Sunrise            string `json:"sunrise"`
		} `json:"daily"`
		Hourly []any `json:"hourly"`
	}
	require.NoError(t, json.Unmarshal(structuredJSON(t, result), &out))
	assert.Equal(t, "Berlin, Germany", out.Location)
	require.Len(t, out.Daily, 2)
	assert.Equal(t, "2025-12-14", out.Daily[0].Date)
	assert.Equal(t, "Overcast", out.Daily[0].WeatherDescription)
	assert.Equal(t, "08:10", out.Daily[0].Sunrise)
	assert.Empty(t, out.Hourly)
}

func TestGetAirQualityTool(t *testing.T) {
	session := newTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_air_quality",
		Arguments: args(t, map[string]any{"city": "Berlin"}),
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out struct {
		USAQI struct {
			Value    int    `json:"value"`
			Category string `json:"category"`
		} `json:"us_aqi"`
		EuropeanAQI struct {
			Value    int    `json:"value"`
			Category string `json:"category"`
		} `json:"european_aqi"`
		Pollutants struct {
			PM25 float64 `json:"pm2_5"`
		} `json:"pollutants"`
		Pollen any `json:"pollen"`
	}
	require.NoError(t, json.Unmarshal(structuredJSON(t, result), &out))
	assert.Equal(t, 57, out.USAQI.Value)
	assert.Equal(t, "Moderate", out.USAQI.Category)
	assert.Equal(t, 31, out.EuropeanAQI.Value)
	assert.Equal(t, "Fair", out.EuropeanAQI.Category)
	assert.Equal(t, 13.6, out.Pollutants.PM25)
	assert.Nil(t, out.Pollen)
}

// structuredJSON returns the structured tool result as raw JSON.
func structuredJSON(t *testing.T, result *mcp.CallToolResult) []byte {
	t.Helper()
	data, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	return data
}

// textContent concatenates the text parts of a tool result.
func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var out string
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			out += tc.Text
		}
	}
	return out
}
