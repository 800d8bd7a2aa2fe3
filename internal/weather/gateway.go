package weather

import (
	"context"
	"errors"
)

// ErrCityNotFound is returned when the provider does not recognize the
// requested city.
var ErrCityNotFound = errors.New("city not found")

// Gateway abstracts the remote weather provider. Current conditions and the
// forecast are keyed by city; air quality requires coordinates, which become
// known only once FetchCurrent has succeeded.
type Gateway interface {
	FetchCurrent(ctx context.Context, spec CitySpec) (CurrentConditions, error)
	FetchForecast(ctx context.Context, spec CitySpec) ([]ForecastSample, error)
	FetchAirQuality(ctx context.Context, lat, lon float64) (AirQualitySample, error)
}
