package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	CatalogBaseURL  string
	AccessSecret    string
	RefreshSecret   string
	CronSecret      string
	LeaderboardFile string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// ReconcileInterval spaces out the background streak-decay sweeps.
	ReconcileInterval time.Duration
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultCatalogBaseURL    = "https://dummyjson.com"
	defaultAccessSecret      = "change-me-access"
	defaultRefreshSecret     = "change-me-refresh"
	defaultAccessTokenTTL    = 15 * time.Minute
	defaultRefreshTokenTTL   = 7 * 24 * time.Hour
	defaultReconcileInterval = 24 * time.Hour
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables, and flags, with flags taking precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		CatalogBaseURL:    getString(lookup, "CATALOG_BASE_URL", defaultCatalogBaseURL),
		AccessSecret:      getString(lookup, "JWT_ACCESS_SECRET", defaultAccessSecret),
		RefreshSecret:     getString(lookup, "JWT_REFRESH_SECRET", defaultRefreshSecret),
		CronSecret:        getString(lookup, "CRON_SECRET", ""),
		LeaderboardFile:   getString(lookup, "LEADERBOARD_FILE", ""),
		AccessTokenTTL:    getDuration(lookup, "ACCESS_TOKEN_TTL", defaultAccessTokenTTL),
		RefreshTokenTTL:   getDuration(lookup, "REFRESH_TOKEN_TTL", defaultRefreshTokenTTL),
		ReconcileInterval: getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("streakmart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CatalogBaseURL, "c", cfg.CatalogBaseURL, "Product catalog base URL")
	fs.StringVar(&cfg.CronSecret, "cron-secret", cfg.CronSecret, "Shared secret guarding the reconciliation endpoint")
	fs.StringVar(&cfg.LeaderboardFile, "leaderboard-file", cfg.LeaderboardFile, "Path of the JSON leaderboard cache; empty keeps the cache in PostgreSQL")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between streak reconciliation sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.AccessSecret, err = resolveSecretFile(lookup, "JWT_ACCESS_SECRET_FILE", cfg.AccessSecret); err != nil {
		return nil, err
	}
	if cfg.RefreshSecret, err = resolveSecretFile(lookup, "JWT_REFRESH_SECRET_FILE", cfg.RefreshSecret); err != nil {
		return nil, err
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.CatalogBaseURL == "" {
		return nil, fmt.Errorf("catalog base URL must be provided")
	}

	return cfg, nil
}

func resolveSecretFile(lookup envLookup, key, current string) (string, error) {
	file, ok := lookup(key)
	if !ok || file == "" {
		return current, nil
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read secret file %s: %w", key, err)
	}
	return strings.TrimSpace(string(content)), nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
