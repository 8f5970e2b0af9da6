package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Service orchestrates the weather sources and the local history.
type Service struct {
	current   CurrentSource
	forecasts []ForecastSource
	history   History
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used to resolve "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service. Forecast sources are tried in order.
func NewService(current CurrentSource, forecasts []ForecastSource, history History, opts ...Option) *Service {
	s := &Service{
		current:   current,
		forecasts: forecasts,
		history:   history,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchCity fetches current weather for a city, remembers it as the
// last-viewed result and records the search.
func (s *Service) SearchCity(ctx context.Context, city string) (CurrentWeather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return CurrentWeather{}, ErrEmptyQuery
	}
	if s.current == nil {
		return CurrentWeather{}, ErrNotConfigured
	}

	w, err := s.current.CurrentByCity(ctx, city)
	if err != nil {
		log.Warn().Err(err).Str("city", city).Msg("current weather lookup failed")
		return CurrentWeather{}, err
	}

	s.remember(w)
	if _, err := s.history.AddRecentSearch(city); err != nil {
		log.Error().Err(err).Str("city", city).Msg("failed to save recent search")
	}
	return w, nil
}

// LookupCoordinates fetches current weather for a coordinate pair, typically
// the device position, and remembers it as the last-viewed result.
func (s *Service) LookupCoordinates(ctx context.Context, coords Coordinates) (CurrentWeather, error) {
	if err := coords.Validate(); err != nil {
		return CurrentWeather{}, err
	}
	if s.current == nil {
		return CurrentWeather{}, ErrNotConfigured
	}

	w, err := s.current.CurrentByCoords(ctx, coords)
	if err != nil {
		log.Warn().Err(err).Float64("lat", coords.Lat).Float64("lon", coords.Lon).Msg("current weather lookup failed")
		return CurrentWeather{}, err
	}

	s.remember(w)
	return w, nil
}

// LastViewed returns the persisted last-viewed record.
func (s *Service) LastViewed() (CurrentWeather, error) {
	w, err := s.history.LastWeather()
	if err != nil {
		return CurrentWeather{}, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	return w, nil
}

// Refresh re-fetches the last-viewed place by its coordinates.
func (s *Service) Refresh(ctx context.Context) (CurrentWeather, error) {
	last, err := s.LastViewed()
	if err != nil {
		return CurrentWeather{}, err
	}
	return s.LookupCoordinates(ctx, last.Coordinates)
}

// Forecast fetches the interval feed for a place and aggregates it into daily
// summaries. Sources are tried in order; the first one that answers wins.
func (s *Service) Forecast(ctx context.Context, coords Coordinates) ([]DailySummary, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}
	if len(s.forecasts) == 0 {
		return nil, fmt.Errorf("no forecast sources configured: %w", ErrNotConfigured)
	}

	var lastErr error
	for _, src := range s.forecasts {
		series, err := src.Forecast(ctx, coords)
		if err != nil {
			log.Warn().Err(err).Str("provider", src.Name()).Msg("forecast fetch failed")
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		zone := series.Zone
		if zone == nil {
			zone = time.UTC
		}
		days := AggregateDaily(series.Samples, s.now().In(zone))
		log.Debug().
			Str("provider", src.Name()).
			Int("samples", len(series.Samples)).
			Int("days", len(days)).
			Msg("forecast aggregated")
		return days, nil
	}
	return nil, lastErr
}

// ForecastForLastViewed derives the forecast for the last-viewed place.
func (s *Service) ForecastForLastViewed(ctx context.Context) (ForecastView, error) {
	last, err := s.LastViewed()
	if err != nil {
		return ForecastView{}, err
	}

	days, err := s.Forecast(ctx, last.Coordinates)
	if err != nil {
		return ForecastView{}, err
	}

	return ForecastView{
		Current:  last,
		Days:     days,
		Overview: Summarize(days),
	}, nil
}

// RecentSearches returns the recent search list, most recent first.
func (s *Service) RecentSearches() ([]string, error) {
	return s.history.RecentSearches()
}

// ClearRecentSearches forgets all recent searches.
func (s *Service) ClearRecentSearches() error {
	return s.history.ClearRecentSearches()
}

// remember persists the last-viewed record. Failures are logged only.
func (s *Service) remember(w CurrentWeather) {
	if err := s.history.SaveLastWeather(w); err != nil {
		log.Error().Err(err).Str("city", w.City).Msg("failed to save last weather")
	}
}
