package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meteo-app/meteo-dashboard/internal/store"
)

// DashboardData bundles everything one city lookup produced. Daily and Air
// are optional: their fetches degrade gracefully and the corresponding
// section is simply absent when nil.
type DashboardData struct {
	Current CurrentConditions
	Daily   []DailySummary
	Air     *AirQualitySample
}

// Service orchestrates gateway calls, caches responses per query key, and
// discards stale refresh results.
type Service struct {
	gateway Gateway

	// tz is the calendar-day bucketing zone for forecast aggregation.
	tz           *time.Location
	forecastDays int

	current  *store.Cache[CurrentConditions]
	forecast *store.Cache[[]ForecastSample]
	air      *store.Cache[AirQualitySample]

	mu sync.Mutex
	// generations tracks the latest refresh issued per cache key; a refresh
	// whose generation no longer matches is discarded instead of overwriting
	// fresher state.
	generations map[string]uint64
}

// NewService creates a Service. cacheTTL bounds how long responses are served
// from cache; tz defaults to UTC when nil.
func NewService(gateway Gateway, tz *time.Location, forecastDays int, cacheTTL time.Duration) *Service {
	if tz == nil {
		tz = time.UTC
	}
	if forecastDays <= 0 || forecastDays > DefaultForecastDays {
		forecastDays = DefaultForecastDays
	}
	return &Service{
		gateway:      gateway,
		tz:           tz,
		forecastDays: forecastDays,
		current:      store.NewCache[CurrentConditions](cacheTTL),
		forecast:     store.NewCache[[]ForecastSample](cacheTTL),
		air:          store.NewCache[AirQualitySample](cacheTTL),
		generations:  make(map[string]uint64),
	}
}

// begin registers a new refresh for key and returns its generation.
func (s *Service) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[key]++
	return s.generations[key]
}

// latest reports whether gen is still the newest refresh issued for key.
func (s *Service) latest(key string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[key] == gen
}

// Current returns current conditions for the city, served from cache when
// fresh.
func (s *Service) Current(ctx context.Context, spec CitySpec) (CurrentConditions, error) {
	key := "current:" + spec.Key()
	if cached, err := s.current.Get(key); err == nil {
		return cached, nil
	}

	gen := s.begin(key)
	rid := uuid.NewString()
	log.Printf("refresh %s: fetching current conditions for %s", rid, spec.Key())

	cond, err := s.gateway.FetchCurrent(ctx, spec)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			return CurrentConditions{}, err
		}
		return CurrentConditions{}, fmt.Errorf("fetch current conditions: %w", err)
	}

	if s.latest(key, gen) {
		s.current.Set(key, cond)
	} else {
		log.Printf("discarding stale current-conditions refresh %s for %s", rid, spec.Key())
	}
	return cond, nil
}

// Forecast returns up to days daily summaries for the city. The raw 3-hour
// series is cached per query key; summaries are recomputed from it on every
// call.
func (s *Service) Forecast(ctx context.Context, spec CitySpec, days int) ([]DailySummary, error) {
	if days <= 0 || days > s.forecastDays {
		days = s.forecastDays
	}

	key := "forecast:" + spec.Key()
	if samples, err := s.forecast.Get(key); err == nil {
		return AggregateDaily(samples, s.tz, days), nil
	}

	gen := s.begin(key)
	rid := uuid.NewString()
	log.Printf("refresh %s: fetching forecast for %s", rid, spec.Key())

	samples, err := s.gateway.FetchForecast(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}

	if s.latest(key, gen) {
		s.forecast.Set(key, samples)
	} else {
		log.Printf("discarding stale forecast refresh %s for %s", rid, spec.Key())
	}
	return AggregateDaily(samples, s.tz, days), nil
}

// AirQuality returns the air-quality reading for a coordinate pair.
func (s *Service) AirQuality(ctx context.Context, lat, lon float64) (AirQualitySample, error) {
	key := fmt.Sprintf("air:%.4f,%.4f", lat, lon)
	if cached, err := s.air.Get(key); err == nil {
		return cached, nil
	}

	gen := s.begin(key)
	rid := uuid.NewString()
	log.Printf("refresh %s: fetching air quality for %.4f,%.4f", rid, lat, lon)

	sample, err := s.gateway.FetchAirQuality(ctx, lat, lon)
	if err != nil {
		return AirQualitySample{}, fmt.Errorf("fetch air quality: %w", err)
	}

	if s.latest(key, gen) {
		s.air.Set(key, sample)
	} else {
		log.Printf("discarding stale air-quality refresh %s for %.4f,%.4f", rid, lat, lon)
	}
	return sample, nil
}

// Dashboard assembles the full view for one city. Current conditions and the
// forecast are fetched concurrently; air quality follows once coordinates are
// known. Only a current-conditions failure is returned to the caller — a
// failed forecast or air-quality fetch is logged and its section left empty.
func (s *Service) Dashboard(ctx context.Context, spec CitySpec) (DashboardData, error) {
	var (
		wg          sync.WaitGroup
		cond        CurrentConditions
		condErr     error
		daily       []DailySummary
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cond, condErr = s.Current(ctx, spec)
	}()
	go func() {
		defer wg.Done()
		daily, forecastErr = s.Forecast(ctx, spec, s.forecastDays)
	}()
	wg.Wait()

	if condErr != nil {
		return DashboardData{}, condErr
	}
	if forecastErr != nil {
		log.Printf("forecast unavailable for %s: %v", spec.Key(), forecastErr)
		daily = nil
	}

	data := DashboardData{Current: cond, Daily: daily}

	air, err := s.AirQuality(ctx, cond.Coord.Lat, cond.Coord.Lon)
	if err != nil {
		log.Printf("air quality unavailable for %s: %v", spec.Key(), err)
	} else {
		data.Air = &air
	}

	return data, nil
}

// Prewarm populates the caches for a city, used by the background sweep job
// for the popular-cities gallery.
func (s *Service) Prewarm(ctx context.Context, spec CitySpec) error {
	_, err := s.Dashboard(ctx, spec)
	return err
}

// SweepCaches evicts expired entries from all response caches and returns the
// total number removed.
func (s *Service) SweepCaches() int {
	return s.current.Sweep() + s.forecast.Sweep() + s.air.Sweep()
}
