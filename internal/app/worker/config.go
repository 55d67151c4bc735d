package worker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.temporal.io/sdk/client"

	platformobservability "github.com/Apurer/go-gin-returns-portal/internal/platform/observability"
)

// Config carries environment-driven settings for the Temporal worker.
type Config struct {
	PostgresDSN       string        `env:"POSTGRES_DSN"`
	RedisURL          string        `env:"REDIS_URL"`
	TemporalAddress   string        `env:"TEMPORAL_ADDRESS"`
	TemporalNamespace string        `env:"TEMPORAL_NAMESPACE"`
	LabelBaseURL      string        `env:"LABEL_BASE_URL" envDefault:"https://shipping.homedepot.com/labels/"`
	CarrierAPIURL     string        `env:"CARRIER_API_URL"`
	CarrierTimeout    time.Duration `env:"CARRIER_API_TIMEOUT" envDefault:"5s"`
	ReturnWindowDays  int           `env:"RETURN_WINDOW_DAYS" envDefault:"90"`
	IdempotencyTTL    time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	Observability platformobservability.Config
}

// LoadConfig reads the worker settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	if cfg.TemporalAddress == "" {
		cfg.TemporalAddress = client.DefaultHostPort
	}
	if cfg.TemporalNamespace == "" {
		cfg.TemporalNamespace = client.DefaultNamespace
	}
	if cfg.ReturnWindowDays <= 0 {
		return Config{}, errors.New("RETURN_WINDOW_DAYS must be positive")
	}
	if cfg.CarrierTimeout <= 0 {
		return Config{}, errors.New("CARRIER_API_TIMEOUT must be positive")
	}
	if err := cfg.Observability.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReturnWindow converts RETURN_WINDOW_DAYS into a duration.
func (c Config) ReturnWindow() time.Duration {
	return time.Duration(c.ReturnWindowDays) * 24 * time.Hour
}
