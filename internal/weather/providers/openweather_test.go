package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meteo-app/meteo-dashboard/internal/weather"
)

const currentPayload = `{
	"name": "Paris",
	"coord": {"lat": 48.8566, "lon": 2.3522},
	"dt": 1741600800,
	"weather": [{"main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"main": {"temp": 12.3, "feels_like": 11.1, "temp_min": 9.5, "temp_max": 14.2, "humidity": 71, "pressure": 1018},
	"wind": {"speed": 4.6, "deg": 230},
	"visibility": 10000,
	"sys": {"country": "FR", "sunrise": 1741586400, "sunset": 1741627200}
}`

const forecastPayload = `{
	"list": [
		{
			"dt": 1741600800,
			"main": {"temp": 12.3, "temp_min": 9.5, "temp_max": 14.2, "humidity": 71, "pressure": 1018},
			"weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}],
			"wind": {"speed": 4.6},
			"pop": 0.45
		},
		{
			"dt": 1741611600,
			"main": {"temp": 13.0, "temp_min": 10.1, "temp_max": 15.0, "humidity": 68, "pressure": 1017},
			"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
			"wind": {"speed": 3.2},
			"pop": 0.1
		}
	]
}`

const airPayload = `{
	"list": [
		{
			"main": {"aqi": 2},
			"components": {"co": 220.3, "no2": 11.6, "o3": 64.4, "pm2_5": 4.8, "pm10": 7.2}
		}
	]
}`

func newTestGateway(t *testing.T, handler http.HandlerFunc) *OpenWeatherGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenWeatherGateway(srv.Client(), "test-key", "metric").WithBaseURL(srv.URL)
}

func TestFetchCurrentDecodesPayload(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Paris,FR" {
			t.Errorf("q = %q, want Paris,FR", q.Get("q"))
		}
		if q.Get("appid") != "test-key" || q.Get("units") != "metric" {
			t.Errorf("credential/units missing: %v", q)
		}
		w.Write([]byte(currentPayload))
	})

	cond, err := gw.FetchCurrent(context.Background(), weather.CitySpec{City: "Paris", Country: "FR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cond.City != "Paris" || cond.Country != "FR" {
		t.Errorf("city/country = %q/%q", cond.City, cond.Country)
	}
	if cond.Coord.Lat != 48.8566 || cond.Coord.Lon != 2.3522 {
		t.Errorf("coord = %+v", cond.Coord)
	}
	if cond.Condition != weather.ConditionCloudy {
		t.Errorf("condition = %q, want cloudy", cond.Condition)
	}
	if cond.Icon != "04d" || cond.Description != "broken clouds" {
		t.Errorf("icon/description = %q/%q", cond.Icon, cond.Description)
	}
	if cond.Temperature != 12.3 || cond.Pressure != 1018 || cond.Visibility != 10000 {
		t.Errorf("numeric fields wrong: %+v", cond)
	}
}

func TestFetchCurrentCityNotFound(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	})

	_, err := gw.FetchCurrent(context.Background(), weather.CitySpec{City: "Nowhere"})
	if !errors.Is(err, weather.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
}

func TestFetchCurrentRequiresAPIKey(t *testing.T) {
	gw := NewOpenWeatherGateway(http.DefaultClient, "", "metric")
	if _, err := gw.FetchCurrent(context.Background(), weather.CitySpec{City: "Paris"}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestFetchForecastDecodesSeries(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(forecastPayload))
	})

	samples, err := gw.FetchForecast(context.Background(), weather.CitySpec{City: "Paris"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}

	first := samples[0]
	if first.TempMin != 9.5 || first.TempMax != 14.2 || first.Pop != 0.45 {
		t.Errorf("first sample wrong: %+v", first)
	}
	if first.Condition != weather.ConditionRain || first.Icon != "10d" {
		t.Errorf("first sample condition/icon wrong: %+v", first)
	}
	if !samples[1].Timestamp.After(first.Timestamp) {
		t.Error("samples not in chronological order")
	}
}

func TestFetchAirQualityDecodesReading(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/air_pollution" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("lat") == "" || q.Get("lon") == "" {
			t.Errorf("lat/lon missing: %v", q)
		}
		w.Write([]byte(airPayload))
	})

	sample, err := gw.FetchAirQuality(context.Background(), 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sample.AQI != 2 {
		t.Errorf("aqi = %d, want 2", sample.AQI)
	}
	if sample.Components.PM25 != 4.8 || sample.Components.O3 != 64.4 {
		t.Errorf("components wrong: %+v", sample.Components)
	}
}

func TestFetchAirQualityEmptyList(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list": []}`))
	})

	if _, err := gw.FetchAirQuality(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for empty reading list")
	}
}

func TestMapCondition(t *testing.T) {
	cases := map[string]weather.Condition{
		"Clear":        weather.ConditionClear,
		"Clouds":       weather.ConditionCloudy,
		"Rain":         weather.ConditionRain,
		"Drizzle":      weather.ConditionRain,
		"Snow":         weather.ConditionSnow,
		"Thunderstorm": weather.ConditionStorm,
		"Mist":         weather.ConditionMist,
		"Tornado":      weather.ConditionUnknown,
	}
	for main, want := range cases {
		if got := MapCondition(main); got != want {
			t.Errorf("MapCondition(%q) = %q, want %q", main, got, want)
		}
	}
}
