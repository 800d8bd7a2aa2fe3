// Package assets maps provider icon codes, conditions, and index values to
// the identifiers and labels the frontend renders.
package assets

import (
	"github.com/meteo-app/meteo-dashboard/internal/common"
	"github.com/meteo-app/meteo-dashboard/internal/weather"
)

// FallbackIcon is served for any icon code outside the known set.
const FallbackIcon = "clear"

// iconAssets is the exhaustive mapping from OpenWeatherMap icon codes to
// asset identifiers. Day and night variants share an asset.
var iconAssets = map[string]string{
	"01d": "clear", "01n": "clear",
	"02d": "cloud", "02n": "cloud",
	"03d": "scattered-clouds", "03n": "scattered-clouds",
	"04d": "broken-clouds", "04n": "broken-clouds",
	"09d": "shower-rain", "09n": "shower-rain",
	"10d": "rain", "10n": "rain",
	"11d": "thunderstorm", "11n": "thunderstorm",
	"13d": "snow", "13n": "snow",
	"50d": "mist", "50n": "mist",
}

// IconAsset resolves an icon code to its asset identifier, falling back to
// the clear icon for unrecognized codes.
func IconAsset(code string) string {
	if asset, ok := iconAssets[code]; ok {
		return asset
	}
	return FallbackIcon
}

// Theme names the decorative background animation for a condition. When the
// condition did not normalize, the free-form description is matched instead.
// Empty string means no decoration.
func Theme(cond weather.Condition, description string) string {
	switch cond {
	case weather.ConditionRain:
		return "rain"
	case weather.ConditionSnow:
		return "snow"
	case weather.ConditionClear:
		return "clear"
	case weather.ConditionCloudy:
		return "clouds"
	case weather.ConditionStorm:
		return "thunder"
	case weather.ConditionUnknown:
		return ThemeFromDescription(description)
	default:
		return ""
	}
}

// ThemeFromDescription categorizes a free-form provider condition text.
func ThemeFromDescription(text string) string {
	switch {
	case common.HasAny(text, "rain", "drizzle"):
		return "rain"
	case common.HasAny(text, "snow"):
		return "snow"
	case common.HasAny(text, "thunder"):
		return "thunder"
	case common.HasAny(text, "cloud"):
		return "clouds"
	case common.HasAny(text, "clear"):
		return "clear"
	default:
		return ""
	}
}

// IndexLevel is a banded reading of a scalar index (AQI, UV).
type IndexLevel struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// AQILevel labels an air-quality index category in [1,5], 1 = best.
// Out-of-range values clamp to the nearest band.
func AQILevel(aqi int) IndexLevel {
	labels := []string{"excellent", "good", "moderate", "poor", "very poor"}
	i := aqi - 1
	if i < 0 {
		i = 0
	}
	if i >= len(labels) {
		i = len(labels) - 1
	}
	return IndexLevel{Value: aqi, Label: labels[i]}
}

// UVLevel labels a UV index reading.
func UVLevel(uv int) IndexLevel {
	var label string
	switch {
	case uv <= 2:
		label = "low"
	case uv <= 5:
		label = "moderate"
	case uv <= 7:
		label = "high"
	case uv <= 10:
		label = "very high"
	default:
		label = "extreme"
	}
	return IndexLevel{Value: uv, Label: label}
}

// PopularCity is one preset shortcut in the default gallery.
type PopularCity struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Image   string `json:"image"`
}

// PopularCities is the fixed gallery shown before any city is chosen.
var PopularCities = []PopularCity{
	{Name: "Paris", Country: "FR", Image: "paris"},
	{Name: "London", Country: "GB", Image: "london"},
	{Name: "New York", Country: "US", Image: "new-york"},
	{Name: "Tokyo", Country: "JP", Image: "tokyo"},
	{Name: "Dubai", Country: "AE", Image: "dubai"},
	{Name: "Sydney", Country: "AU", Image: "sydney"},
}
