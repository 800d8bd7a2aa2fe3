package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// CitySpec identifies the place a lookup is issued for.
// City must be provided; Country is an optional ISO code ("FR").
type CitySpec struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// Key returns a canonical string key for indexing this spec in caches.
func (c CitySpec) Key() string {
	return c.City + ":" + c.Country
}

// Query returns the provider query string, "City" or "City,CC".
func (c CitySpec) Query() string {
	if c.Country == "" {
		return c.City
	}
	return c.City + "," + c.Country
}

// Coordinates is a lat/lon pair as reported by the provider.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentConditions is the normalized current-weather view for a city.
type CurrentConditions struct {
	City    string      `json:"city"`
	Country string      `json:"country"`
	Coord   Coordinates `json:"coord"`

	Timestamp   time.Time `json:"timestamp"` // always UTC
	Condition   Condition `json:"condition"`
	Icon        string    `json:"icon"` // provider icon code, e.g. "01d"
	Description string    `json:"description"`

	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	TempMin     float64 `json:"tempMin"`
	TempMax     float64 `json:"tempMax"`
	Humidity    float64 `json:"humidityPercent"`
	Pressure    float64 `json:"pressureHpa"`
	WindSpeed   float64 `json:"windSpeed"`
	WindDeg     float64 `json:"windDeg"`
	Visibility  int     `json:"visibilityM"`

	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// ForecastSample is one 3-hour slot of the provider's forecast series.
type ForecastSample struct {
	Timestamp time.Time `json:"timestamp"`

	Temp     float64 `json:"temperature"`
	TempMin  float64 `json:"tempMin"`
	TempMax  float64 `json:"tempMax"`
	Humidity float64 `json:"humidityPercent"`
	Pressure float64 `json:"pressureHpa"`

	Condition   Condition `json:"condition"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`

	WindSpeed float64 `json:"windSpeed"`

	// Pop is the precipitation probability in [0,1].
	Pop float64 `json:"pop"`
}

// DailySummary collapses all samples of one calendar day into a single row.
// Icon and Description come from the first sample seen for the day.
type DailySummary struct {
	Date        time.Time `json:"date"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Pop         float64   `json:"pop"`
}

// AirComponents holds pollutant concentrations in µg/m³.
type AirComponents struct {
	CO   float64 `json:"co"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
}

// AirQualitySample is the provider's air-quality reading for a coordinate.
// AQI is an integer category in [1,5], 1 = best.
type AirQualitySample struct {
	AQI        int           `json:"aqi"`
	Components AirComponents `json:"components"`
}
