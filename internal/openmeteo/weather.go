package openmeteo

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/forgeworks/weather-mcp/internal/meteo"
	"github.com/forgeworks/weather-mcp/internal/models"
)

// Field sets requested from the forecast endpoint.
var (
	currentFields = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"apparent_temperature",
		"weather_code",
		"wind_speed_10m",
		"wind_direction_10m",
		"pressure_msl",
	}
	dailyFields = []string{
		"temperature_2m_max",
		"temperature_2m_min",
		"apparent_temperature_max",
		"apparent_temperature_min",
		"precipitation_sum",
		"precipitation_probability_max",
		"weather_code",
		"sunrise",
		"sunset",
		"wind_speed_10m_max",
	}
	hourlyFields = []string{
		"temperature_2m",
		"precipitation_probability",
		"weather_code",
		"wind_speed_10m",
	}
)

// GetCurrentWeather resolves the location and fetches current conditions.
func (c *Client) GetCurrentWeather(ctx context.Context, ref LocationRef, units Units) (*models.CurrentWeather, error) {
	lat, lon, displayName, err := c.ResolveLocation(ctx, ref)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("current", strings.Join(currentFields, ","))
	params.Set("timezone", "auto")
	units.apply(params)

	var data forecastResponse
	if err := c.request(ctx, endpointForecast, c.forecastURL, params, &data); err != nil {
		return nil, err
	}

	current := data.Current
	weatherCode := int(valueOr(current.WeatherCode, 0))
	windDir := int(valueOr(current.WindDirection, 0))

	tz := data.Timezone
	if tz == "" {
		tz = "UTC"
	}

	return &models.CurrentWeather{
		Location:             displayName,
		Coordinates:          [2]float64{lat, lon},
		Timezone:             tz,
		Time:                 current.Time,
		Temperature:          valueOr(current.Temperature, 0),
		FeelsLike:            valueOr(current.ApparentTemperature, 0),
		Humidity:             int(valueOr(current.RelativeHumidity, 0)),
		WeatherCode:          weatherCode,
		WeatherDescription:   meteo.WeatherDescription(weatherCode),
		WindSpeed:            valueOr(current.WindSpeed, 0),
		WindDirection:        windDir,
		WindDirectionCompass: meteo.DegreesToCompass(windDir),
		Pressure:             valueOr(current.PressureMSL, 0),
		Units:                units.labels(),
	}, nil
}

// GetForecast resolves the location and fetches a daily forecast, with an
// hourly breakdown when requested. days is clamped to [1,16].
func (c *Client) GetForecast(ctx context.Context, ref LocationRef, days int, hourly bool, units Units) (*models.Forecast, error) {
	lat, lon, displayName, err := c.ResolveLocation(ctx, ref)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("daily", strings.Join(dailyFields, ","))
	params.Set("timezone", "auto")
	params.Set("forecast_days", strconv.Itoa(clamp(days, 1, 16)))
	if hourly {
		params.Set("hourly", strings.Join(hourlyFields, ","))
	}
	units.apply(params)

	var data forecastResponse
	if err := c.request(ctx, endpointForecast, c.forecastURL, params, &data); err != nil {
		return nil, err
	}

	tz := data.Timezone
	if tz == "" {
		tz = "UTC"
	}

	forecast := &models.Forecast{
		Location:    displayName,
		Coordinates: [2]float64{lat, lon},
		Timezone:    tz,
		Units:       units.labels(),
		Daily:       parseDaily(data.Daily),
	}
	if hourly {
		forecast.Hourly = parseHourly(data.Hourly)
	}
	return forecast, nil
}

// parseDaily walks the date array, reading the same index from each
// parallel field array. Short or null-holed field arrays default per entry
// instead of failing.
func parseDaily(daily dailyBlock) []models.DailyForecast {
	out := make([]models.DailyForecast, 0, len(daily.Time))
	for i, date := range daily.Time {
		weatherCode := intAt(daily.WeatherCode, i)
		out = append(out, models.DailyForecast{
			Date:                     date,
			TemperatureMax:           at(daily.TemperatureMax, i, 0),
			TemperatureMin:           at(daily.TemperatureMin, i, 0),
			FeelsLikeMax:             at(daily.ApparentTemperatureMax, i, 0),
			FeelsLikeMin:             at(daily.ApparentTemperatureMin, i, 0),
			PrecipitationSum:         at(daily.PrecipitationSum, i, 0),
			PrecipitationProbability: intAt(daily.PrecipitationProbabilityMax, i),
			WeatherCode:              weatherCode,
			WeatherDescription:       meteo.WeatherDescription(weatherCode),
			Sunrise:                  timeOfDay(at(daily.Sunrise, i, "")),
			Sunset:                   timeOfDay(at(daily.Sunset, i, "")),
			WindSpeedMax:             at(daily.WindSpeedMax, i, 0),
		})
	}
	return out
}

func parseHourly(hourly hourlyBlock) []models.HourlyForecast {
	out := make([]models.HourlyForecast, 0, len(hourly.Time))
	for i, t := range hourly.Time {
		weatherCode := intAt(hourly.WeatherCode, i)
		out = append(out, models.HourlyForecast{
			Time:                     t,
			Temperature:              at(hourly.Temperature, i, 0),
			PrecipitationProbability: intAt(hourly.PrecipitationProbability, i),
			WeatherCode:              weatherCode,
			WeatherDescription:       meteo.WeatherDescription(weatherCode),
			WindSpeed:                at(hourly.WindSpeed, i, 0),
		})
	}
	return out
}

// timeOfDay strips the date part of an ISO timestamp ("2024-01-15T07:58"
// becomes "07:58"), falling back to the raw string when no separator is
// present.
func timeOfDay(s string) string {
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
