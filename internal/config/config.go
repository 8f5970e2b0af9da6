package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
)

type AppConfig struct {
	OpenWeatherAPIKey  string `env:"OPENWEATHER_API_KEY"`
	OpenWeatherBaseURL string `env:"OPENWEATHER_BASE_URL, default=https://api.openweathermap.org/data/2.5" validate:"url"`

	// Open-Meteo is the keyless fallback forecast source.
	OpenMeteoEnabled bool   `env:"OPENMETEO_ENABLED, default=true"`
	OpenMeteoBaseURL string `env:"OPENMETEO_BASE_URL, default=https://api.open-meteo.com/v1/forecast" validate:"url"`

	// Outbound HTTP behaviour. Retries are off unless asked for.
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT, default=10s" validate:"gt=0"`
	HTTPMaxRetries int           `env:"HTTP_MAX_RETRIES, default=0" validate:"gte=0,lte=10"`

	// Local persistence.
	StoreDriver         string `env:"STORE_DRIVER, default=sqlite" validate:"oneof=sqlite memory"`
	StorePath           string `env:"STORE_PATH, default=weather.db"`
	RecentSearchesLimit int    `env:"RECENT_SEARCHES_LIMIT, default=5" validate:"gte=1"`

	// RefreshInterval controls how often the last-viewed place is re-fetched
	// by the server (0 disables).
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL, default=30m" validate:"gte=0"`

	Port      string `env:"PORT, default=8080"`
	LogLevel  string `env:"LOG_LEVEL, default=info" validate:"oneof=trace debug info warn error"`
	LogFormat string `env:"LOG_FORMAT, default=console" validate:"oneof=console json"`
}

var validate = validator.New()

// Load reads configuration from the environment (and a .env file when one
// exists) with sensible defaults.
func Load(ctx context.Context) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	return FromLookuper(ctx, envconfig.OsLookuper())
}

// FromLookuper decodes and validates configuration from l.
func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
