package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-webhook/internal/weather"
)

// Refresher re-fetches and caches the series for a location.
type Refresher interface {
	Refresh(ctx context.Context, loc weather.Location) error
}

// Purger drops expired cache entries.
type Purger interface {
	Purge() int
}

// Scheduler periodically warms the series cache for configured locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	purger    Purger
	locations []weather.Location
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, refresher Refresher, purger Purger, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		purger:    purger,
		locations: locations,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("no locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every configured location concurrently, then purges
// whatever expired in the meantime.
func (s *Scheduler) RunOnce() {
	s.logger.Debug("running cache warm-up job", "locations", len(s.locations))

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func(loc weather.Location) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if err := s.refresher.Refresh(ctx, loc); err != nil {
				s.logger.Warn("refresh failed", "location", loc.Key(), "error", err)
			}
		}(loc)
	}
	wg.Wait()

	if s.purger != nil {
		if n := s.purger.Purge(); n > 0 {
			s.logger.Debug("purged expired series", "count", n)
		}
	}
	s.logger.Debug("completed cache warm-up job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
