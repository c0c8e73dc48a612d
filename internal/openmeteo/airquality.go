package openmeteo

import (
	"context"
	"net/url"
	"strings"

	"github.com/forgeworks/weather-mcp/internal/meteo"
	"github.com/forgeworks/weather-mcp/internal/models"
)

var airQualityFields = []string{
	"us_aqi",
	"european_aqi",
	"pm10",
	"pm2_5",
	"carbon_monoxide",
	"nitrogen_dioxide",
	"sulphur_dioxide",
	"ozone",
}

// Pollen is only reported for European locations by the upstream source.
var pollenFields = []string{
	"alder_pollen",
	"birch_pollen",
	"grass_pollen",
	"mugwort_pollen",
	"olive_pollen",
	"ragweed_pollen",
}

// GetAirQuality resolves the location and fetches current air quality.
// Pollen fields are requested and reported only when includePollen is set.
func (c *Client) GetAirQuality(ctx context.Context, ref LocationRef, includePollen bool) (*models.AirQuality, error) {
	lat, lon, displayName, err := c.ResolveLocation(ctx, ref)
	if err != nil {
		return nil, err
	}

	fields := airQualityFields
	if includePollen {
		fields = append(append([]string{}, airQualityFields...), pollenFields...)
	}

	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("current", strings.Join(fields, ","))
	params.Set("timezone", "auto")

	var data airQualityResponse
	if err := c.request(ctx, endpointAirQuality, c.airQualityURL, params, &data); err != nil {
		return nil, err
	}

	current := data.Current
	usAQI := int(valueOr(current.USAQI, 0))
	euAQI := int(valueOr(current.EuropeanAQI, 0))

	var pollen *models.PollenLevels
	if includePollen {
		pollen = &models.PollenLevels{
			Alder:   valueOr(current.AlderPollen, 0),
			Birch:   valueOr(current.BirchPollen, 0),
			Grass:   valueOr(current.GrassPollen, 0),
			Mugwort: valueOr(current.MugwortPollen, 0),
			Olive:   valueOr(current.OlivePollen, 0),
			Ragweed: valueOr(current.RagweedPollen, 0),
		}
	}

	return &models.AirQuality{
		Location:    displayName,
		Coordinates: [2]float64{lat, lon},
		Time:        current.Time,
		USAQI: models.AirQualityIndex{
			Value:    usAQI,
			Category: meteo.USAQICategory(usAQI),
		},
		EuropeanAQI: models.AirQualityIndex{
			Value:    euAQI,
			Category: meteo.EUAQICategory(euAQI),
		},
		Pollutants: models.Pollutants{
			PM25:            valueOr(current.PM25, 0),
			PM10:            valueOr(current.PM10, 0),
			Ozone:           valueOr(current.Ozone, 0),
			NitrogenDioxide: valueOr(current.NitrogenDioxide, 0),
			SulphurDioxide:  valueOr(current.SulphurDioxide, 0),
			CarbonMonoxide:  valueOr(current.CarbonMonoxide, 0),
		},
		Pollen: pollen,
	}, nil
}
