package openmeteo

// Wire types for the three Open-Meteo endpoints. The forecast payloads use
// parallel arrays indexed by position; individual entries can be null and
// some field arrays can be shorter than the primary time array, so every
// entry is a pointer read through the bounded accessors below.

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Timezone    string   `json:"timezone"`
	Population  *float64 `json:"population"`
	Admin1      string   `json:"admin1"`
}

type forecastResponse struct {
	Timezone string       `json:"timezone"`
	Current  currentBlock `json:"current"`
	Daily    dailyBlock   `json:"daily"`
	Hourly   hourlyBlock  `json:"hourly"`
}

type currentBlock struct {
	Time                string   `json:"time"`
	Temperature         *float64 `json:"temperature_2m"`
	RelativeHumidity    *float64 `json:"relative_humidity_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	WeatherCode         *float64 `json:"weather_code"`
	WindSpeed           *float64 `json:"wind_speed_10m"`
	WindDirection       *float64 `json:"wind_direction_10m"`
	PressureMSL         *float64 `json:"pressure_msl"`
}

type dailyBlock struct {
	Time                        []string   `json:"time"`
	TemperatureMax              []*float64 `json:"temperature_2m_max"`
	TemperatureMin              []*float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax      []*float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin      []*float64 `json:"apparent_temperature_min"`
	PrecipitationSum            []*float64 `json:"precipitation_sum"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	WeatherCode                 []*float64 `json:"weather_code"`
	Sunrise                     []*string  `json:"sunrise"`
	Sunset                      []*string  `json:"sunset"`
	WindSpeedMax                []*float64 `json:"wind_speed_10m_max"`
}

type hourlyBlock struct {
	Time                     []string   `json:"time"`
	Temperature              []*float64 `json:"temperature_2m"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	WeatherCode              []*float64 `json:"weather_code"`
	WindSpeed                []*float64 `json:"wind_speed_10m"`
}

type airQualityResponse struct {
	Timezone string         `json:"timezone"`
	Current  aqCurrentBlock `json:"current"`
}

type aqCurrentBlock struct {
	Time            string   `json:"time"`
	USAQI           *float64 `json:"us_aqi"`
	EuropeanAQI     *float64 `json:"european_aqi"`
	PM10            *float64 `json:"pm10"`
	PM25            *float64 `json:"pm2_5"`
	CarbonMonoxide  *float64 `json:"carbon_monoxide"`
	NitrogenDioxide *float64 `json:"nitrogen_dioxide"`
	SulphurDioxide  *float64 `json:"sulphur_dioxide"`
	Ozone           *float64 `json:"ozone"`
	AlderPollen     *float64 `json:"alder_pollen"`
	BirchPollen     *float64 `json:"birch_pollen"`
	GrassPollen     *float64 `json:"grass_pollen"`
	MugwortPollen   *float64 `json:"mugwort_pollen"`
	OlivePollen     *float64 `json:"olive_pollen"`
	RagweedPollen   *float64 `json:"ragweed_pollen"`
}

// at returns values[i], or def when the index is out of range for this
// field array or the entry is null.
func at[T any](values []*T, i int, def T) T {
	if i >= len(values) || values[i] == nil {
		return def
	}
	return *values[i]
}

// intAt is at for numeric arrays whose result record field is an int.
func intAt(values []*float64, i int) int {
	return int(at(values, i, 0))
}

// valueOr dereferences an optional scalar, substituting def for null.
func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
