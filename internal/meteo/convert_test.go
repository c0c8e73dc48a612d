package meteo

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		name    string
		celsius float64
		want    float64
	}{
		{"freezing point", 0, 32},
		{"boiling point", 100, 212},
		{"scales cross", -40, -40},
		{"body temperature", 37, 98.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CelsiusToFahrenheit(tt.celsius); !almostEqual(got, tt.want) {
				t.Errorf("CelsiusToFahrenheit(%v) = %v, want %v", tt.celsius, got, tt.want)
			}
		})
	}
}

// TestConversionRoundTrips verifies that every conversion pair is inverse
// within floating tolerance across a spread of values.
func TestConversionRoundTrips(t *testing.T) {
	values := []float64{-40, -1.5, 0, 0.1, 12.34, 100, 1013.25, 2500}

	pairs := []struct {
		name    string
		forward func(float64) float64
		back    func(float64) float64
	}{
		{"celsius/fahrenheit", CelsiusToFahrenheit, FahrenheitToCelsius},
		{"kmh/mph", KmhToMph, MphToKmh},
		{"hpa/inhg", HpaToInhg, InhgToHpa},
		{"mm/inches", MmToInches, InchesToMm},
	}

	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			for _, v := range values {
				got := p.back(p.forward(v))
				if math.Abs(got-v) > 1e-6 {
					t.Errorf("%s round trip of %v = %v", p.name, v, got)
				}
			}
		})
	}
}

func TestConversionFixedPoints(t *testing.T) {
	if got := KmhToMph(100); !almostEqual(got, 62.1371) {
		t.Errorf("KmhToMph(100) = %v, want 62.1371", got)
	}
	if got := HpaToInhg(1000); !almostEqual(got, 29.53) {
		t.Errorf("HpaToInhg(1000) = %v, want 29.53", got)
	}
	if got := MmToInches(100); !almostEqual(got, 3.93701) {
		t.Errorf("MmToInches(100) = %v, want 3.93701", got)
	}
}

func TestDegreesToCompass_Cardinals(t *testing.T) {
	tests := []struct {
		degrees int
		want    string
	}{
		{0, "N"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{360, "N"},
		{45, "NE"},
		{135, "SE"},
		{225, "SW"},
		{315, "NW"},
		{22, "NNE"},
		{23, "NNE"},
		{337, "NNW"},
		{348, "NNW"},
		{349, "N"},
	}
	for _, tt := range tests {
		if got := DegreesToCompass(tt.degrees); got != tt.want {
			t.Errorf("DegreesToCompass(%d) = %q, want %q", tt.degrees, got, tt.want)
		}
	}
}

// TestDegreesToCompass_Periodicity verifies compass(d) == compass(d mod 360)
// for degrees well outside the normal range, including negatives.
func TestDegreesToCompass_Periodicity(t *testing.T) {
	for d := -720; d <= 1080; d += 7 {
		norm := ((d % 360) + 360) % 360
		if got, want := DegreesToCompass(d), DegreesToCompass(norm); got != want {
			t.Errorf("DegreesToCompass(%d) = %q, want %q (same as %d)", d, got, want, norm)
		}
	}
}
