package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/meteo-app/meteo-dashboard/internal/weather"
)

// Scheduler periodically sweeps expired cache entries and pre-warms the
// popular-cities gallery so the first lookup after startup is served warm.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cities    []weather.CitySpec
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cities []weather.CitySpec, interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		evicted := s.service.SweepCaches()
		if evicted > 0 {
			log.Printf("scheduler: evicted %d expired cache entries", evicted)
		}

		if len(s.cities) == 0 {
			return
		}

		log.Println("scheduler: pre-warming popular cities")

		var wg sync.WaitGroup
		for _, spec := range s.cities {
			spec := spec
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := s.service.Prewarm(ctx, spec); err != nil {
					log.Printf("scheduler: prewarm failed for %s: %v", spec.Key(), err)
				}
			}()
		}
		wg.Wait()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
