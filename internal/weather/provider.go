package weather

import (
	"context"
	"errors"
)

var (
	// ErrCityNotFound is returned when the data source does not know the city.
	ErrCityNotFound = errors.New("city not found")
	// ErrUnavailable wraps network failures and non-2xx upstream responses.
	ErrUnavailable = errors.New("weather data not available")
	// ErrNotConfigured is returned by sources missing credentials.
	ErrNotConfigured = errors.New("weather source not configured")
	// ErrNoData is returned when nothing has been viewed yet.
	ErrNoData = errors.New("no weather data")
	// ErrEmptyQuery is returned for a blank city search.
	ErrEmptyQuery = errors.New("city name is empty")
	// ErrInvalidCoordinates is returned for out-of-range coordinates.
	ErrInvalidCoordinates = errors.New("coordinates out of range")
)

// CurrentSource returns current conditions by city name or coordinates.
type CurrentSource interface {
	Name() string
	CurrentByCity(ctx context.Context, city string) (CurrentWeather, error)
	CurrentByCoords(ctx context.Context, coords Coordinates) (CurrentWeather, error)
}

// ForecastSource returns the interval forecast feed for a place.
type ForecastSource interface {
	Name() string
	Forecast(ctx context.Context, coords Coordinates) (ForecastSeries, error)
}

// History is the contract the local persistence layer must satisfy.
type History interface {
	SaveLastWeather(w CurrentWeather) error
	LastWeather() (CurrentWeather, error)
	AddRecentSearch(city string) ([]string, error)
	RecentSearches() ([]string, error)
	ClearRecentSearches() error
}
