package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/meteo-app/meteo-dashboard/internal/weather"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherGateway implements the weather.Gateway interface against the
// OpenWeatherMap data/2.5 API (current weather, 5-day/3-hour forecast,
// air pollution).
type OpenWeatherGateway struct {
	client  *http.Client
	apiKey  string
	units   string
	baseURL string
}

// NewOpenWeatherGateway creates a gateway with the given credential and unit
// preference ("metric" or "imperial"). The key is injected, never embedded.
func NewOpenWeatherGateway(client *http.Client, apiKey, units string) *OpenWeatherGateway {
	if units == "" {
		units = "metric"
	}
	return &OpenWeatherGateway{
		client:  client,
		apiKey:  apiKey,
		units:   units,
		baseURL: defaultBaseURL,
	}
}

// WithBaseURL overrides the provider base URL. Used by tests.
func (g *OpenWeatherGateway) WithBaseURL(u string) *OpenWeatherGateway {
	g.baseURL = u
	return g
}

func (g *OpenWeatherGateway) FetchCurrent(ctx context.Context, spec weather.CitySpec) (weather.CurrentConditions, error) {
	if g.apiKey == "" {
		return weather.CurrentConditions{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", spec.Query())
	values.Set("appid", g.apiKey)
	values.Set("units", g.units)

	var payload struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Dt      int64 `json:"dt"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   float64 `json:"deg"`
		} `json:"wind"`
		Visibility int `json:"visibility"`
		Sys        struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
	}

	if err := g.getJSON(ctx, "/weather", values, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	ts := time.Unix(payload.Dt, 0).UTC()
	if payload.Dt == 0 {
		ts = time.Now().UTC()
	}

	cond := weather.ConditionUnknown
	icon := ""
	desc := ""
	if len(payload.Weather) > 0 {
		cond = MapCondition(payload.Weather[0].Main)
		icon = payload.Weather[0].Icon
		desc = payload.Weather[0].Description
	}

	return weather.CurrentConditions{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Coord:       weather.Coordinates{Lat: payload.Coord.Lat, Lon: payload.Coord.Lon},
		Timestamp:   ts,
		Condition:   cond,
		Icon:        icon,
		Description: desc,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		TempMin:     payload.Main.TempMin,
		TempMax:     payload.Main.TempMax,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		WindSpeed:   payload.Wind.Speed,
		WindDeg:     payload.Wind.Deg,
		Visibility:  payload.Visibility,
		Sunrise:     time.Unix(payload.Sys.Sunrise, 0).UTC(),
		Sunset:      time.Unix(payload.Sys.Sunset, 0).UTC(),
	}, nil
}

func (g *OpenWeatherGateway) FetchForecast(ctx context.Context, spec weather.CitySpec) ([]weather.ForecastSample, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", spec.Query())
	values.Set("appid", g.apiKey)
	values.Set("units", g.units)

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp     float64 `json:"temp"`
				TempMin  float64 `json:"temp_min"`
				TempMax  float64 `json:"temp_max"`
				Humidity float64 `json:"humidity"`
				Pressure float64 `json:"pressure"`
			} `json:"main"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Pop float64 `json:"pop"`
		} `json:"list"`
	}

	if err := g.getJSON(ctx, "/forecast", values, &payload); err != nil {
		return nil, err
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		s := weather.ForecastSample{
			Timestamp: time.Unix(item.Dt, 0).UTC(),
			Temp:      item.Main.Temp,
			TempMin:   item.Main.TempMin,
			TempMax:   item.Main.TempMax,
			Humidity:  item.Main.Humidity,
			Pressure:  item.Main.Pressure,
			WindSpeed: item.Wind.Speed,
			Pop:       item.Pop,
			Condition: weather.ConditionUnknown,
		}
		if len(item.Weather) > 0 {
			s.Condition = MapCondition(item.Weather[0].Main)
			s.Icon = item.Weather[0].Icon
			s.Description = item.Weather[0].Description
		}
		samples = append(samples, s)
	}

	return samples, nil
}

func (g *OpenWeatherGateway) FetchAirQuality(ctx context.Context, lat, lon float64) (weather.AirQualitySample, error) {
	if g.apiKey == "" {
		return weather.AirQualitySample{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("appid", g.apiKey)

	var payload struct {
		List []struct {
			Main struct {
				AQI int `json:"aqi"`
			} `json:"main"`
			Components struct {
				CO   float64 `json:"co"`
				NO2  float64 `json:"no2"`
				O3   float64 `json:"o3"`
				PM25 float64 `json:"pm2_5"`
				PM10 float64 `json:"pm10"`
			} `json:"components"`
		} `json:"list"`
	}

	if err := g.getJSON(ctx, "/air_pollution", values, &payload); err != nil {
		return weather.AirQualitySample{}, err
	}

	if len(payload.List) == 0 {
		return weather.AirQualitySample{}, fmt.Errorf("air pollution response contained no readings")
	}

	first := payload.List[0]
	return weather.AirQualitySample{
		AQI: first.Main.AQI,
		Components: weather.AirComponents{
			CO:   first.Components.CO,
			NO2:  first.Components.NO2,
			O3:   first.Components.O3,
			PM25: first.Components.PM25,
			PM10: first.Components.PM10,
		},
	}, nil
}

// getJSON issues a single GET against the provider and decodes the body.
// One request per call: failures surface immediately to the caller.
func (g *OpenWeatherGateway) getJSON(ctx context.Context, path string, values url.Values, out any) error {
	u := fmt.Sprintf("%s%s?%s", g.baseURL, path, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return weather.ErrCityNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("openweather %s: unexpected status code %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// MapCondition normalizes OpenWeatherMap's main condition group.
func MapCondition(main string) weather.Condition {
	switch main {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionCloudy
	case "Rain", "Drizzle":
		return weather.ConditionRain
	case "Snow":
		return weather.ConditionSnow
	case "Thunderstorm":
		return weather.ConditionStorm
	case "Mist", "Fog", "Haze":
		return weather.ConditionMist
	default:
		return weather.ConditionUnknown
	}
}
