package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/meteo-app/meteo-dashboard/internal/assets"
	"github.com/meteo-app/meteo-dashboard/internal/weather"
)

var validate = validator.New()

// The free provider tier has no UV endpoint; the dashboard shows a fixed
// estimate, banded like a real reading.
const estimatedUVIndex = 3

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		spec, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cond, err := service.Current(c.Context(), spec)
		if err != nil {
			if errors.Is(err, weather.ErrCityNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "city not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(newCurrentView(cond))
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		daily, err := service.Forecast(c.Context(), req.City.toSpec(), req.Days)
		if err != nil {
			if errors.Is(err, weather.ErrCityNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "city not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch forecast data")
		}

		return c.JSON(fiber.Map{
			"city":     req.City.toSpec(),
			"forecast": newForecastTiles(daily),
		})
	})

	v1.Get("/weather/air", func(c *fiber.Ctx) error {
		lat, lon, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sample, err := service.AirQuality(c.Context(), lat, lon)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch air quality data")
		}

		return c.JSON(newAirDetail(sample))
	})

	v1.Get("/weather/dashboard", func(c *fiber.Ctx) error {
		spec, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := service.Dashboard(c.Context(), spec)
		if err != nil {
			if errors.Is(err, weather.ErrCityNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "city not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(newDashboardView(data))
	})

	v1.Get("/cities/popular", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities": assets.PopularCities,
		})
	})
}

// cityQuery holds query parameters identifying a city. Country is optional;
// a free-form "City,CC" in the city parameter is also accepted.
type cityQuery struct {
	City    string `validate:"required"`
	Country string
}

func (q cityQuery) toSpec() weather.CitySpec {
	return weather.CitySpec{
		City:    q.City,
		Country: q.Country,
	}
}

func parseCityQuery(c *fiber.Ctx) (weather.CitySpec, error) {
	var q cityQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return weather.CitySpec{}, err
	}

	return q.toSpec(), nil
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	City cityQuery
	Days int `validate:"min=1,max=5"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	q := cityQuery{
		City:    c.Query("city"),
		Country: c.Query("country"),
	}
	if err := validate.Struct(q); err != nil {
		return err
	}
	f.City = q

	f.Days = weather.DefaultForecastDays
	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return errors.New("days must be an integer")
		}
		f.Days = days
	}

	return validate.Struct(f)
}

func parseCoordQuery(c *fiber.Ctx) (float64, float64, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return 0, 0, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, errors.New("lon must be a number")
	}

	return lat, lon, nil
}
