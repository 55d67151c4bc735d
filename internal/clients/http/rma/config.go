package rma

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config locates the returns API.
type Config struct {
	BaseURL string        `env:"RETURNS_API_URL" envDefault:"http://localhost:8081"`
	Timeout time.Duration `env:"RETURNS_API_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse returns client config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the base URL is absolute and the timeout positive.
func (c Config) Validate() error {
	parsed, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("RETURNS_API_URL must be an absolute URL, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("RETURNS_API_TIMEOUT must be positive, got %s", c.Timeout)
	}
	return nil
}
