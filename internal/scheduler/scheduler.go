package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Refresher re-fetches the last-viewed place.
type Refresher interface {
	Refresh(ctx context.Context) (weather.CurrentWeather, error)
}

// Scheduler periodically refreshes the last-viewed weather record.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, service Refresher) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info().Msg("scheduler: refresh disabled")
		return nil
	}

	// The first run happens one interval after start.
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Info().Dur("interval", s.interval).Msg("scheduler: started")
	return nil
}

// RunOnce refreshes the last-viewed record a single time.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	w, err := s.service.Refresh(ctx)
	switch {
	case errors.Is(err, weather.ErrNoData):
		log.Debug().Msg("scheduler: nothing viewed yet; skipping refresh")
	case err != nil:
		log.Warn().Err(err).Msg("scheduler: refresh failed")
	default:
		log.Info().Str("city", w.City).Msg("scheduler: refreshed last-viewed weather")
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
