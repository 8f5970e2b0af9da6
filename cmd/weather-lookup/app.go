package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/logging"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

// app holds the wired dependencies shared by every subcommand.
type app struct {
	cfg     *config.AppConfig
	kv      store.KV
	service *weather.Service
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}

	// Shared HTTP client for outbound provider calls.
	httpCfg := providers.HTTPClientConfig{
		Client: &http.Client{Timeout: cfg.HTTPTimeout},
		Backoff: providers.BackoffConfig{
			MaxRetries:      cfg.HTTPMaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
	}

	kv, err := store.Open(cfg.StoreDriver, cfg.StorePath)
	if err != nil {
		return nil, err
	}
	history := store.NewHistory(kv, cfg.RecentSearchesLimit)

	owm := providers.NewOpenWeatherProvider(httpCfg, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL)
	if cfg.OpenWeatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY is not set; current weather lookups will fail")
	}

	forecasts := []weather.ForecastSource{owm}
	if cfg.OpenMeteoEnabled {
		forecasts = append(forecasts, providers.NewOpenMeteoProvider(httpCfg, cfg.OpenMeteoBaseURL))
	}

	log.Debug().
		Str("store", cfg.StoreDriver).
		Int("forecastSources", len(forecasts)).
		Msg("weather service configured")

	return &app{
		cfg:     cfg,
		kv:      kv,
		service: weather.NewService(owm, forecasts, history),
	}, nil
}

func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close store")
	}
}
