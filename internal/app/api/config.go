package api

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/customers/adapters/auth"
	platformobservability "github.com/Apurer/go-gin-returns-portal/internal/platform/observability"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                        int           `env:"PORT" envDefault:"8081"`
	PostgresDSN                 string        `env:"POSTGRES_DSN"`
	RedisURL                    string        `env:"REDIS_URL"`
	TemporalAddress             string        `env:"TEMPORAL_ADDRESS"`
	TemporalNamespace           string        `env:"TEMPORAL_NAMESPACE"`
	TemporalDisabled            bool          `env:"TEMPORAL_DISABLED"`
	SessionTTL                  time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionPurgeIntervalMinutes int           `env:"SESSION_PURGE_INTERVAL_MINUTES"`
	JWTSecret                   string        `env:"JWT_SECRET" envDefault:"local-development-secret"`
	JWTIssuer                   string        `env:"JWT_ISSUER" envDefault:"returns-portal"`
	LabelBaseURL                string        `env:"LABEL_BASE_URL" envDefault:"https://shipping.homedepot.com/labels/"`
	CarrierAPIURL               string        `env:"CARRIER_API_URL"`
	SeedFixtures                bool          `env:"SEED_FIXTURES" envDefault:"true"`
	ReturnWindowDays            int           `env:"RETURN_WINDOW_DAYS" envDefault:"90"`
	IdempotencyTTL              time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
	ChatTranscriptTTL           time.Duration `env:"CHAT_TRANSCRIPT_TTL" envDefault:"2h"`
	ShutdownTimeout             time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Observability platformobservability.Config
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
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
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that the env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.SessionPurgeIntervalMinutes < 0 {
		errs = append(errs, errors.New("SESSION_PURGE_INTERVAL_MINUTES must be a positive integer"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.ReturnWindowDays <= 0 {
		errs = append(errs, errors.New("RETURN_WINDOW_DAYS must be positive"))
	}
	if c.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("IDEMPOTENCY_TTL must be positive"))
	}
	switch {
	case strings.TrimSpace(c.JWTSecret) == "":
		errs = append(errs, errors.New("JWT_SECRET is required"))
	case len(c.JWTSecret) < auth.MinSecretLength:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", auth.MinSecretLength))
	}
	if _, err := url.ParseRequestURI(c.LabelBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("LABEL_BASE_URL is invalid: %w", err))
	}
	if c.CarrierAPIURL != "" {
		if _, err := url.ParseRequestURI(c.CarrierAPIURL); err != nil {
			errs = append(errs, fmt.Errorf("CARRIER_API_URL is invalid: %w", err))
		}
	}
	if err := c.Observability.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ReturnWindow converts RETURN_WINDOW_DAYS into a duration.
func (c Config) ReturnWindow() time.Duration {
	return time.Duration(c.ReturnWindowDays) * 24 * time.Hour
}

// SessionPurgeInterval is zero when the purge loop is disabled.
func (c Config) SessionPurgeInterval() time.Duration {
	return time.Duration(c.SessionPurgeIntervalMinutes) * time.Minute
}
