package meteo

// aqiBand is one inclusive value range of an air quality index scale.
type aqiBand struct {
	low, high int
	category  string
}

// US EPA Air Quality Index categories.
// https://www.airnow.gov/aqi/aqi-basics/
var usAQIBands = []aqiBand{
	{0, 50, "Good"},
	{51, 100, "Moderate"},
	{101, 150, "Unhealthy for Sensitive Groups"},
	{151, 200, "Unhealthy"},
	{201, 300, "Very Unhealthy"},
	{301, 500, "Hazardous"},
}

// European Air Quality Index categories.
var euAQIBands = []aqiBand{
	{0, 20, "Good"},
	{21, 40, "Fair"},
	{41, 60, "Moderate"},
	{61, 80, "Poor"},
	{81, 100, "Very Poor"},
	{101, 999, "Extremely Poor"},
}

// USAQICategory returns the US EPA category for an AQI value, or "Unknown"
// for values outside every band.
func USAQICategory(value int) string {
	return categoryFor(usAQIBands, value)
}

// EUAQICategory returns the European AQI category for a value, or "Unknown"
// for values outside every band.
func EUAQICategory(value int) string {
	return categoryFor(euAQIBands, value)
}

func categoryFor(bands []aqiBand, value int) string {
	for _, b := range bands {
		if value >= b.low && value <= b.high {
			return b.category
		}
	}
	return "Unknown"
}
