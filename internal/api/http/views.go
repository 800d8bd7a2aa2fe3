package httpapi

import (
	"math"

	"github.com/meteo-app/meteo-dashboard/internal/assets"
	"github.com/meteo-app/meteo-dashboard/internal/weather"
)

// currentView decorates current conditions with the resolved icon asset and
// the background decoration theme.
type currentView struct {
	weather.CurrentConditions
	IconAsset string `json:"iconAsset"`
	Theme     string `json:"theme,omitempty"`
}

func newCurrentView(cond weather.CurrentConditions) currentView {
	return currentView{
		CurrentConditions: cond,
		IconAsset:         assets.IconAsset(cond.Icon),
		Theme:             assets.Theme(cond.Condition, cond.Description),
	}
}

// forecastTile is one daily forecast card.
type forecastTile struct {
	weather.DailySummary
	IconAsset  string `json:"iconAsset"`
	PopPercent int    `json:"popPercent"`
}

func newForecastTiles(daily []weather.DailySummary) []forecastTile {
	tiles := make([]forecastTile, 0, len(daily))
	for _, d := range daily {
		tiles = append(tiles, forecastTile{
			DailySummary: d,
			IconAsset:    assets.IconAsset(d.Icon),
			PopPercent:   int(math.Round(d.Pop * 100)),
		})
	}
	return tiles
}

// pressureDetail is the pressure cell of the detail grid, with a note
// relative to the 1013 hPa reference.
type pressureDetail struct {
	Hpa  float64 `json:"hpa"`
	Note string  `json:"note"`
}

func newPressureDetail(hpa float64) pressureDetail {
	note := "below normal"
	if hpa > 1013 {
		note = "above normal"
	}
	return pressureDetail{Hpa: hpa, Note: note}
}

// visibilityDetail is the visibility cell, reported in km.
type visibilityDetail struct {
	Km   float64 `json:"km"`
	Note string  `json:"note"`
}

func newVisibilityDetail(meters int) *visibilityDetail {
	if meters <= 0 {
		return nil
	}
	note := "reduced visibility"
	switch {
	case meters >= 10000:
		note = "excellent visibility"
	case meters >= 5000:
		note = "good visibility"
	}
	return &visibilityDetail{
		Km:   math.Round(float64(meters)/100) / 10,
		Note: note,
	}
}

// uvDetail is the UV cell. Estimated is true when the value did not come
// from the provider.
type uvDetail struct {
	assets.IndexLevel
	Estimated bool `json:"estimated"`
}

// airDetail is the air-quality cell: the banded AQI plus raw components.
type airDetail struct {
	assets.IndexLevel
	Components weather.AirComponents `json:"components"`
}

func newAirDetail(sample weather.AirQualitySample) airDetail {
	return airDetail{
		IndexLevel: assets.AQILevel(sample.AQI),
		Components: sample.Components,
	}
}

// detailGrid is the 4-metric grid next to the main weather card.
type detailGrid struct {
	Pressure   pressureDetail    `json:"pressure"`
	Visibility *visibilityDetail `json:"visibility,omitempty"`
	UVIndex    uvDetail          `json:"uvIndex"`
	AirQuality *airDetail        `json:"airQuality,omitempty"`
}

// dashboardView is the composite response for one city lookup. Forecast and
// air-quality sections are absent when their fetches failed.
type dashboardView struct {
	Current  currentView    `json:"current"`
	Forecast []forecastTile `json:"forecast,omitempty"`
	Details  detailGrid     `json:"details"`
	Theme    string         `json:"theme,omitempty"`
}

func newDashboardView(data weather.DashboardData) dashboardView {
	view := dashboardView{
		Current:  newCurrentView(data.Current),
		Forecast: newForecastTiles(data.Daily),
		Details: detailGrid{
			Pressure:   newPressureDetail(data.Current.Pressure),
			Visibility: newVisibilityDetail(data.Current.Visibility),
			UVIndex: uvDetail{
				IndexLevel: assets.UVLevel(estimatedUVIndex),
				Estimated:  true,
			},
		},
		Theme: assets.Theme(data.Current.Condition, data.Current.Description),
	}
	if data.Air != nil {
		air := newAirDetail(*data.Air)
		view.Details.AirQuality = &air
	}
	return view
}
