package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	PayPalAPIBase   string
	PayPalClientID  string
	PayPalSecret    string
	LocalStorePath  string
	AdminLogin      string
	AdminPassword   string
	TokenSecret     string
	TokenTTL        time.Duration
	OrdersLimit     int
	RefreshInterval time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultPayPalAPIBase   = "https://api-m.sandbox.paypal.com"
	defaultLocalStorePath  = "orderdesk-orders.json"
	defaultTokenSecret     = "change-me-in-production"
	defaultTokenTTL        = 12 * time.Hour
	defaultOrdersLimit     = 25
	defaultRefreshInterval = 5 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		PayPalAPIBase:   getString(lookup, "PAYPAL_API_BASE", defaultPayPalAPIBase),
		PayPalClientID:  getString(lookup, "PAYPAL_CLIENT_ID", ""),
		PayPalSecret:    getString(lookup, "PAYPAL_SECRET", ""),
		LocalStorePath:  getString(lookup, "LOCAL_STORE_PATH", defaultLocalStorePath),
		AdminLogin:      getString(lookup, "ADMIN_LOGIN", ""),
		AdminPassword:   getString(lookup, "ADMIN_PASSWORD", ""),
		TokenSecret:     getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		OrdersLimit:     getInt(lookup, "ORDERS_LIMIT", defaultOrdersLimit),
		RefreshInterval: getDuration(lookup, "REFRESH_INTERVAL", defaultRefreshInterval),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("orderdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		refreshIntervalStr = cfg.RefreshInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PayPalAPIBase, "paypal-api", cfg.PayPalAPIBase, "PayPal REST API base URL")
	fs.StringVar(&cfg.LocalStorePath, "local-store", cfg.LocalStorePath, "Path to the local order fallback file")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.OrdersLimit, "orders-limit", cfg.OrdersLimit, "Maximum orders fetched from the remote store")
	fs.StringVar(&refreshIntervalStr, "refresh-interval", refreshIntervalStr, "Interval between background view refreshes")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RefreshInterval, err = time.ParseDuration(refreshIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.OrdersLimit <= 0 {
		cfg.OrdersLimit = defaultOrdersLimit
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaultRefreshInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if (cfg.PayPalClientID == "") != (cfg.PayPalSecret == "") {
		return nil, fmt.Errorf("paypal client id and secret must be provided together")
	}

	if (cfg.AdminLogin == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("admin login and password must be provided together")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
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
