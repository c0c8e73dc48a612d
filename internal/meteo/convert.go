package meteo

import "math"

// CelsiusToFahrenheit converts a temperature from Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts a temperature from Fahrenheit to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// KmhToMph converts a wind speed from km/h to mph.
func KmhToMph(kmh float64) float64 {
	return kmh * 0.621371
}

// MphToKmh converts a wind speed from mph to km/h.
func MphToKmh(mph float64) float64 {
	return mph / 0.621371
}

// HpaToInhg converts a pressure from hectopascals to inches of mercury.
func HpaToInhg(hpa float64) float64 {
	return hpa * 0.02953
}

// InhgToHpa converts a pressure from inches of mercury to hectopascals.
func InhgToHpa(inhg float64) float64 {
	return inhg / 0.02953
}

// MmToInches converts a precipitation amount from millimeters to inches.
func MmToInches(mm float64) float64 {
	return mm * 0.0393701
}

// InchesToMm converts a precipitation amount from inches to millimeters.
func InchesToMm(inches float64) float64 {
	return inches / 0.0393701
}

// compassPoints lists the 16-point compass rose starting at north and
// proceeding clockwise. Each point covers 22.5 degrees.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// DegreesToCompass converts a wind direction in degrees (0/360 is north)
// to a 16-point compass direction. Degrees outside [0,360) are normalized.
func DegreesToCompass(degrees int) string {
	d := degrees % 360
	if d < 0 {
		d += 360
	}
	idx := int(math.Round(float64(d)/22.5)) % 16
	return compassPoints[idx]
}
