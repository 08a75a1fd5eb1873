package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrNoData is returned when no provider produced usable data.
	ErrNoData = errors.New("no weather data available")
	// ErrNoProviders is returned when the service has nothing to query.
	ErrNoProviders = errors.New("no weather providers configured")
)

// Service orchestrates providers, the series cache and the outlook engine.
type Service struct {
	store       Store
	providers   []Provider
	logger      *slog.Logger
	outlookDays int
}

// NewService creates a new Service. Providers are tried in order.
func NewService(store Store, providers []Provider, logger *slog.Logger, outlookDays int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if outlookDays <= 0 {
		outlookDays = 8
	}
	return &Service{
		store:       store,
		providers:   providers,
		logger:      logger.With("component", "weather.service"),
		outlookDays: outlookDays,
	}
}

// OutlookDays is the inclusive length of a forecast window.
func (s *Service) OutlookDays() int {
	return s.outlookDays
}

// Window returns the inclusive [start, end] window answered for a start date.
func (s *Service) Window(start Date) (Date, Date) {
	return start, start.AddDays(s.outlookDays - 1)
}

// Current returns the latest conditions from the first provider that answers.
func (s *Service) Current(ctx context.Context, loc Location) (Current, error) {
	if len(s.providers) == 0 {
		return Current{}, ErrNoProviders
	}

	var errs []error
	for _, p := range s.providers {
		cur, err := p.FetchCurrent(ctx, loc)
		if err != nil {
			s.logger.Warn("current conditions fetch failed", "provider", p.Name(), "location", loc.Key(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		return cur, nil
	}
	return Current{}, fmt.Errorf("%w: %w", ErrNoData, errors.Join(errs...))
}

// Outlook builds the multi-day outlook starting at start. A provider failure
// is returned as an error; an empty series is reported through
// Window.Status == WindowNoData.
func (s *Service) Outlook(ctx context.Context, loc Location, start Date) (Outlook, error) {
	series, err := s.Series(ctx, loc)
	if err != nil {
		return Outlook{}, err
	}

	horizon := s.outlookDays
	if err := CheckCadence(series); err != nil {
		s.logger.Warn("skipping horizon extension", "location", loc.Key(), "error", err)
		horizon = 0
	}

	_, end := s.Window(start)
	out := BuildOutlook(series, start, end, horizon)
	if out.Location == "" {
		out.Location = loc.City
	}
	s.logger.Debug("outlook built",
		"location", loc.Key(),
		"samples", len(series.Samples),
		"status", out.Window.Status,
		"start", out.Window.Start,
		"end", out.Window.End,
	)
	return out, nil
}

// Series returns the cached series for loc or fetches a fresh one.
func (s *Service) Series(ctx context.Context, loc Location) (Series, error) {
	if s.store != nil {
		if series, err := s.store.GetSeries(loc); err == nil {
			return series, nil
		}
	}
	return s.fetchSeries(ctx, loc)
}

// Refresh fetches a fresh series for loc and stores it. A series warmed for
// "city,country" is also stored under the bare city, which is all a chat
// request carries.
func (s *Service) Refresh(ctx context.Context, loc Location) error {
	series, err := s.fetchSeries(ctx, loc)
	if err != nil {
		return err
	}
	if s.store != nil && loc.Country != "" && len(series.Samples) > 0 {
		s.store.SaveSeries(Location{City: loc.City}, series)
	}
	return nil
}

func (s *Service) fetchSeries(ctx context.Context, loc Location) (Series, error) {
	if len(s.providers) == 0 {
		return Series{}, ErrNoProviders
	}

	var errs []error
	for _, p := range s.providers {
		series, err := p.FetchSeries(ctx, loc)
		if err != nil {
			s.logger.Warn("forecast fetch failed", "provider", p.Name(), "location", loc.Key(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		if len(series.Samples) == 0 {
			s.logger.Warn("provider returned no samples", "provider", p.Name(), "location", loc.Key())
			continue
		}
		if s.store != nil {
			s.store.SaveSeries(loc, series)
		}
		return series, nil
	}

	if len(errs) == len(s.providers) {
		return Series{}, fmt.Errorf("%w: %w", ErrNoData, errors.Join(errs...))
	}
	// At least one provider answered with an empty list.
	return Series{Location: loc.City}, nil
}
