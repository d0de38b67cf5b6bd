// The inventory API: lists servers a page at a time, with links to the
// neighbouring pages.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/oklog/run"
	"github.com/sethvargo/go-envconfig"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"

	"github.com/jdholdren/pagelinks/internal/api"
	"github.com/jdholdren/pagelinks/internal/inventory"
	"github.com/jdholdren/pagelinks/internal/migrations"
	plsqlite "github.com/jdholdren/pagelinks/internal/sqlite"
	"github.com/jdholdren/pagelinks/logger"
)

type config struct {
	Database string `env:"DATABASE, required"`

	Port       int    `env:"PORT, default=4444"`
	BaseURL    string `env:"BASE_URL, default=http://localhost:4444"`
	CorsOrigin string `env:"CORS_ORIGIN, default=*"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`
	LogLevel     string `env:"LOG_LEVEL, default=info"`

	DefaultPageSize int           `env:"DEFAULT_PAGE_SIZE, default=20"`
	MaxPageSize     int           `env:"MAX_PAGE_SIZE, default=100"`
	CountTimeout    time.Duration `env:"COUNT_TIMEOUT, default=250ms"`
	CountCacheSize  int           `env:"COUNT_CACHE_SIZE, default=1024"`
	CountCacheTTL   time.Duration `env:"COUNT_CACHE_TTL, default=30s"`
}

func main() {
	ctx := context.Background()

	// A .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("error loading .env: %s", err)
	}

	// Parse the config
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("error parsing config: %s", err)
	}

	slog.SetDefault(logger.New(os.Stderr, cfg.LoggerFormat, cfg.LogLevel))

	// Start the application
	if err := runAPI(ctx, cfg); err != nil {
		slog.Error("error running", "error", err)
		os.Exit(1)
	}
}

func runAPI(ctx context.Context, cfg config) error {
	// Connect to the sqlite db
	dbx, err := sqlx.Open("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.Database))
	if err != nil {
		return fmt.Errorf("error opening database: %s", err)
	}
	defer dbx.Close()

	// Retry until the database answers
	if err := retry.Fibonacci(ctx, 100*time.Millisecond, func(ctx context.Context) error {
		if err := dbx.PingContext(ctx); err != nil {
			slog.Warn("database not ready", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("error connecting to database: %s", err)
	}

	// Migrate, always
	if err := migrations.Run(dbx); err != nil {
		return fmt.Errorf("error migrating: %s", err)
	}

	inv := inventory.NewService(plsqlite.New(dbx), inventory.ServiceConfig{
		CountTimeout:   cfg.CountTimeout,
		CountCacheSize: cfg.CountCacheSize,
		CountCacheTTL:  cfg.CountCacheTTL,
	})
	s := api.NewServer(api.ServerConfig{
		Port:            cfg.Port,
		BaseURL:         cfg.BaseURL,
		CorsOrigin:      cfg.CorsOrigin,
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	}, inv)

	var g run.Group
	g.Add(func() error {
		slog.Info("listening", "port", cfg.Port)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error listening: %s", err)
		}

		return nil
	}, func(error) {
		downCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(downCtx); err != nil {
			slog.Error("error shutting down server", "error", err)
		}
	})
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	err = g.Run()
	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		slog.Info("shutting down", "signal", sigErr.Signal.String())
		return nil
	}

	return err
}
