package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	customerspg "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/go-gin-returns-portal/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-returns-portal/internal/platform/postgres"
)

type config struct {
	PostgresDSN string        `env:"POSTGRES_DSN,required"`
	Timeout     time.Duration `env:"SESSION_PURGE_TIMEOUT" envDefault:"30s"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}
	level, err := platformobservability.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("session purge failed", slog.String("error", err.Error()))
		cancel()
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		return fmt.Errorf("postgres unavailable; cannot purge sessions")
	}
	purged, err := customerspg.NewSessionStore(db).PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
	return nil
}
