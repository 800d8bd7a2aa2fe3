package weather

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// fakeGateway is a scriptable Gateway implementation for service tests.
type fakeGateway struct {
	current  CurrentConditions
	currErr  error
	samples  []ForecastSample
	fcErr    error
	air      AirQualitySample
	airErr   error
	currGate chan struct{} // when set, FetchCurrent blocks until closed

	currentCalls atomic.Int32
}

func (f *fakeGateway) FetchCurrent(ctx context.Context, spec CitySpec) (CurrentConditions, error) {
	f.currentCalls.Add(1)
	if f.currGate != nil {
		<-f.currGate
	}
	return f.current, f.currErr
}

func (f *fakeGateway) FetchForecast(ctx context.Context, spec CitySpec) ([]ForecastSample, error) {
	return f.samples, f.fcErr
}

func (f *fakeGateway) FetchAirQuality(ctx context.Context, lat, lon float64) (AirQualitySample, error) {
	return f.air, f.airErr
}

func testSamples(days int) []ForecastSample {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	samples := make([]ForecastSample, 0, days*8)
	for i := 0; i < days*8; i++ {
		samples = append(samples, ForecastSample{
			Timestamp: start.Add(time.Duration(i) * 3 * time.Hour),
			TempMin:   10,
			TempMax:   20,
			Icon:      "01d",
			Pop:       0.1,
		})
	}
	return samples
}

func TestDashboardAllSectionsPresent(t *testing.T) {
	gw := &fakeGateway{
		current: CurrentConditions{
			City:      "Paris",
			Country:   "FR",
			Coord:     Coordinates{Lat: 48.85, Lon: 2.35},
			Condition: ConditionClear,
		},
		samples: testSamples(5),
		air:     AirQualitySample{AQI: 2},
	}
	svc := NewService(gw, time.UTC, 5, time.Minute)

	data, err := svc.Dashboard(context.Background(), CitySpec{City: "Paris", Country: "FR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Current.City != "Paris" {
		t.Errorf("current city = %q, want Paris", data.Current.City)
	}
	if len(data.Daily) != 5 {
		t.Errorf("expected 5 daily summaries, got %d", len(data.Daily))
	}
	if data.Air == nil || data.Air.AQI != 2 {
		t.Errorf("air quality missing or wrong: %+v", data.Air)
	}
}

func TestDashboardCityNotFound(t *testing.T) {
	gw := &fakeGateway{currErr: ErrCityNotFound}
	svc := NewService(gw, time.UTC, 5, time.Minute)

	_, err := svc.Dashboard(context.Background(), CitySpec{City: "Nowhere"})
	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
}

func TestDashboardDegradesWithoutForecast(t *testing.T) {
	gw := &fakeGateway{
		current: CurrentConditions{City: "Paris", Coord: Coordinates{Lat: 48.85, Lon: 2.35}},
		fcErr:   errors.New("upstream timeout"),
		air:     AirQualitySample{AQI: 1},
	}
	svc := NewService(gw, time.UTC, 5, time.Minute)

	data, err := svc.Dashboard(context.Background(), CitySpec{City: "Paris"})
	if err != nil {
		t.Fatalf("forecast failure must not fail the dashboard: %v", err)
	}
	if len(data.Daily) != 0 {
		t.Errorf("expected no daily summaries, got %d", len(data.Daily))
	}
	if data.Air == nil {
		t.Error("air quality should still be present")
	}
}

func TestDashboardDegradesWithoutAirQuality(t *testing.T) {
	gw := &fakeGateway{
		current: CurrentConditions{City: "Paris", Coord: Coordinates{Lat: 48.85, Lon: 2.35}},
		samples: testSamples(2),
		airErr:  errors.New("upstream timeout"),
	}
	svc := NewService(gw, time.UTC, 5, time.Minute)

	data, err := svc.Dashboard(context.Background(), CitySpec{City: "Paris"})
	if err != nil {
		t.Fatalf("air-quality failure must not fail the dashboard: %v", err)
	}
	if data.Air != nil {
		t.Errorf("expected absent air section, got %+v", data.Air)
	}
	if len(data.Daily) != 2 {
		t.Errorf("expected 2 daily summaries, got %d", len(data.Daily))
	}
}

func TestCurrentServedFromCache(t *testing.T) {
	gw := &fakeGateway{current: CurrentConditions{City: "Paris"}}
	svc := NewService(gw, time.UTC, 5, time.Minute)
	spec := CitySpec{City: "Paris", Country: "FR"}

	if _, err := svc.Current(context.Background(), spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Current(context.Background(), spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls := gw.currentCalls.Load(); calls != 1 {
		t.Fatalf("expected 1 gateway call, got %d", calls)
	}
}

func TestStaleCurrentRefreshIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	gw := &fakeGateway{
		current:  CurrentConditions{City: "Paris"},
		currGate: gate,
	}
	svc := NewService(gw, time.UTC, 5, time.Minute)
	spec := CitySpec{City: "Paris", Country: "FR"}
	key := "current:" + spec.Key()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := svc.Current(context.Background(), spec); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	// Wait for the in-flight refresh to register its generation, then issue
	// a newer one for the same key before releasing it.
	for i := 0; ; i++ {
		svc.mu.Lock()
		gen := svc.generations[key]
		svc.mu.Unlock()
		if gen > 0 {
			break
		}
		if i > 100 {
			t.Fatal("refresh never registered a generation")
		}
		time.Sleep(10 * time.Millisecond)
	}
	svc.begin(key)

	close(gate)
	<-done

	// The superseded refresh must not have written the cache.
	if _, err := svc.current.Get(key); err == nil {
		t.Fatal("stale refresh overwrote the cache")
	}
}

func TestForecastRespectsDaysBound(t *testing.T) {
	gw := &fakeGateway{samples: testSamples(5)}
	svc := NewService(gw, time.UTC, 5, time.Minute)

	daily, err := svc.Forecast(context.Background(), CitySpec{City: "Paris"}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(daily) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(daily))
	}

	// Out-of-range days fall back to the configured maximum.
	daily, err = svc.Forecast(context.Background(), CitySpec{City: "Paris"}, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(daily) != 5 {
		t.Fatalf("expected 5 summaries, got %d", len(daily))
	}
}
