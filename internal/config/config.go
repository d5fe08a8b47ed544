package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	CashfreeBaseURL      string
	CashfreeClientID     string
	CashfreeClientSecret string
	CashfreeAPIVersion   string
	IdentitySecret       string
	AMQPURL              string
	GatewayTimeout       time.Duration
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultIdentitySecret  = "change-me-in-production"
	defaultAPIVersion      = "2025-01-01"
	defaultGatewayTimeout  = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		CashfreeBaseURL:      getString(lookup, "CASHFREE_BASE_URL", ""),
		CashfreeClientID:     getString(lookup, "CASHFREE_CLIENT_ID", ""),
		CashfreeClientSecret: getString(lookup, "CASHFREE_CLIENT_SECRET", ""),
		CashfreeAPIVersion:   getString(lookup, "CASHFREE_API_VERSION", defaultAPIVersion),
		IdentitySecret:       getString(lookup, "IDENTITY_JWT_SECRET", defaultIdentitySecret),
		AMQPURL:              getString(lookup, "RABBITMQ_URL", ""),
		GatewayTimeout:       getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("tiffinbox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		gatewayTimeoutStr  = cfg.GatewayTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CashfreeBaseURL, "g", cfg.CashfreeBaseURL, "Payment gateway base URL")
	fs.StringVar(&cfg.CashfreeClientID, "gateway-client-id", cfg.CashfreeClientID, "Payment gateway client id")
	fs.StringVar(&cfg.CashfreeClientSecret, "gateway-client-secret", cfg.CashfreeClientSecret, "Payment gateway client secret")
	fs.StringVar(&cfg.CashfreeAPIVersion, "gateway-api-version", cfg.CashfreeAPIVersion, "Payment gateway API version header")
	fs.StringVar(&cfg.IdentitySecret, "identity-secret", cfg.IdentitySecret, "Secret for verifying identity provider tokens")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "AMQP broker URL for order events (optional)")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Payment gateway request timeout")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("IDENTITY_JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read identity secret file: %w", err)
		}
		cfg.IdentitySecret = string(content)
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.CashfreeBaseURL == "" {
		return nil, fmt.Errorf("payment gateway base URL must be provided")
	}

	return cfg, nil
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
