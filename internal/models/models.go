// Package models defines the typed result records returned by the weather
// tools. All records are immutable request-scoped values; numeric fields
// default to 0 when the upstream payload omits them.
package models

// Location is a geocoded place. Produced only by geocoding search.
type Location struct {
	Name        string  `json:"name" jsonschema:"city name"`
	Country     string  `json:"country" jsonschema:"country name"`
	CountryCode string  `json:"country_code" jsonschema:"ISO country code (e.g. 'DE', 'US')"`
	Latitude    float64 `json:"latitude" jsonschema:"latitude coordinate"`
	Longitude   float64 `json:"longitude" jsonschema:"longitude coordinate"`
	Timezone    string  `json:"timezone" jsonschema:"IANA timezone (e.g. 'Europe/Berlin')"`
	Population  int     `json:"population,omitempty" jsonschema:"city population"`
	Admin1      string  `json:"admin1,omitempty" jsonschema:"state/province/region name"`
}

// WeatherUnits carries the unit labels attached to a weather response.
// Selected once per request from the metric/imperial flag.
type WeatherUnits struct {
	Temperature   string `json:"temperature" jsonschema:"temperature unit (e.g. '°C', '°F')"`
	WindSpeed     string `json:"wind_speed" jsonschema:"wind speed unit (e.g. 'km/h', 'mph')"`
	Pressure      string `json:"pressure" jsonschema:"pressure unit (e.g. 'hPa')"`
	Precipitation string `json:"precipitation" jsonschema:"precipitation unit (e.g. 'mm', 'in')"`
}

// CurrentWeather is a point-in-time weather snapshot for one location.
type CurrentWeather struct {
	Location    string     `json:"location" jsonschema:"location display name (e.g. 'Berlin, Germany')"`
	Coordinates [2]float64 `json:"coordinates" jsonschema:"[latitude, longitude]"`
	Timezone    string     `json:"timezone" jsonschema:"IANA timezone"`
	Time        string     `json:"time" jsonschema:"observation time (ISO format)"`

	Temperature float64 `json:"temperature" jsonschema:"current temperature"`
	FeelsLike   float64 `json:"feels_like" jsonschema:"apparent temperature"`
	Humidity    int     `json:"humidity" jsonschema:"relative humidity (%)"`

	WeatherCode        int    `json:"weather_code" jsonschema:"WMO weather code"`
	WeatherDescription string `json:"weather_description" jsonschema:"human-readable weather description"`

	WindSpeed            float64 `json:"wind_speed" jsonschema:"wind speed"`
	WindDirection        int     `json:"wind_direction" jsonschema:"wind direction (degrees)"`
	WindDirectionCompass string  `json:"wind_direction_compass" jsonschema:"wind direction (compass, e.g. 'NNE')"`

	Pressure float64 `json:"pressure" jsonschema:"sea level pressure"`

	Units WeatherUnits `json:"units" jsonschema:"units for measurements"`
}

// DailyForecast is one forecast day.
type DailyForecast struct {
	Date                     string  `json:"date" jsonschema:"forecast date (YYYY-MM-DD)"`
	TemperatureMax           float64 `json:"temperature_max" jsonschema:"maximum temperature"`
	TemperatureMin           float64 `json:"temperature_min" jsonschema:"minimum temperature"`
	FeelsLikeMax             float64 `json:"feels_like_max" jsonschema:"maximum apparent temperature"`
	FeelsLikeMin             float64 `json:"feels_like_min" jsonschema:"minimum apparent temperature"`
	PrecipitationSum         float64 `json:"precipitation_sum" jsonschema:"total precipitation"`
	PrecipitationProbability int     `json:"precipitation_probability" jsonschema:"precipitation probability (%)"`
	WeatherCode              int     `json:"weather_code" jsonschema:"WMO weather code"`
	WeatherDescription       string  `json:"weather_description" jsonschema:"human-readable weather description"`
	Sunrise                  string  `json:"sunrise" jsonschema:"sunrise time (HH:MM)"`
	Sunset                   string  `json:"sunset" jsonschema:"sunset time (HH:MM)"`
	WindSpeedMax             float64 `json:"wind_speed_max" jsonschema:"maximum wind speed"`
}

// HourlyForecast is one forecast hour.
type HourlyForecast struct {
	Time                     string  `json:"time" jsonschema:"forecast time (ISO format)"`
	Temperature              float64 `json:"temperature" jsonschema:"temperature"`
	PrecipitationProbability int     `json:"precipitation_probability" jsonschema:"precipitation probability (%)"`
	WeatherCode              int     `json:"weather_code" jsonschema:"WMO weather code"`
	WeatherDescription       string  `json:"weather_description" jsonschema:"human-readable weather description"`
	WindSpeed                float64 `json:"wind_speed" jsonschema:"wind speed"`
}

// Forecast is the location context plus the ordered daily sequence and, when
// requested, the hourly sequence.
type Forecast struct {
	Location    string           `json:"location" jsonschema:"location display name"`
	Coordinates [2]float64       `json:"coordinates" jsonschema:"[latitude, longitude]"`
	Timezone    string           `json:"timezone" jsonschema:"IANA timezone"`
	Units       WeatherUnits     `json:"units" jsonschema:"units for measurements"`
	Daily       []DailyForecast  `json:"daily" jsonschema:"daily forecasts"`
	Hourly      []HourlyForecast `json:"hourly,omitempty" jsonschema:"hourly forecasts (only if requested)"`
}

// AirQualityIndex is one AQI scale reading with its derived category.
type AirQualityIndex struct {
	Value    int    `json:"value" jsonschema:"AQI numeric value"`
	Category string `json:"category" jsonschema:"AQI category (e.g. 'Good', 'Moderate')"`
}

// Pollutants holds pollutant concentrations in μg/m³.
type Pollutants struct {
	PM25            float64 `json:"pm2_5" jsonschema:"fine particulate matter (PM2.5)"`
	PM10            float64 `json:"pm10" jsonschema:"coarse particulate matter (PM10)"`
	Ozone           float64 `json:"ozone" jsonschema:"ozone (O3)"`
	NitrogenDioxide float64 `json:"nitrogen_dioxide" jsonschema:"nitrogen dioxide (NO2)"`
	SulphurDioxide  float64 `json:"sulphur_dioxide" jsonschema:"sulphur dioxide (SO2)"`
	CarbonMonoxide  float64 `json:"carbon_monoxide" jsonschema:"carbon monoxide (CO)"`
}

// PollenLevels holds pollen concentrations in grains/m³. Only meaningful
// for European locations.
type PollenLevels struct {
	Alder   float64 `json:"alder" jsonschema:"alder pollen"`
	Birch   float64 `json:"birch" jsonschema:"birch pollen"`
	Grass   float64 `json:"grass" jsonschema:"grass pollen"`
	Mugwort float64 `json:"mugwort" jsonschema:"mugwort pollen"`
	Olive   float64 `json:"olive" jsonschema:"olive pollen"`
	Ragweed float64 `json:"ragweed" jsonschema:"ragweed pollen"`
}

// AirQuality is the air quality response for one location. Pollen is set
// only when explicitly requested.
type AirQuality struct {
	Location    string     `json:"location" jsonschema:"location display name"`
	Coordinates [2]float64 `json:"coordinates" jsonschema:"[latitude, longitude]"`
	Time        string     `json:"time" jsonschema:"observation time (ISO format)"`

	USAQI       AirQualityIndex `json:"us_aqi" jsonschema:"US EPA Air Quality Index"`
	EuropeanAQI AirQualityIndex `json:"european_aqi" jsonschema:"European Air Quality Index"`

	Pollutants Pollutants    `json:"pollutants" jsonschema:"pollutant concentrations"`
	Pollen     *PollenLevels `json:"pollen,omitempty" jsonschema:"pollen levels (Europe only, if requested)"`
}
