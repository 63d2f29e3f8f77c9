package config_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/momentum/tetris-vault-toast/internal/config"
	"github.com/momentum/tetris-vault-toast/internal/domain"
)

var managedVars = []string{
	"PORT", "HOST", "STATIC_DIR", "INDEX_FILE", "READ_TIMEOUT", "WRITE_TIMEOUT",
	"SHUTDOWN_TIMEOUT", "LOG_LEVEL", "METRICS_ENABLED", "RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST", "HEALTHCHECK_TIMEOUT",
}

// clearEnv blanks every variable Load reads; an empty value counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedVars {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("expected addr 0.0.0.0:8080, got %s", cfg.Addr())
	}
	if cfg.StaticDir != "static" || cfg.IndexFile != "static/index.html" {
		t.Fatalf("unexpected asset paths: %q %q", cfg.StaticDir, cfg.IndexFile)
	}
	if cfg.LogLevel != zapcore.InfoLevel {
		t.Fatalf("expected info level, got %s", cfg.LogLevel)
	}
	if !cfg.MetricsEnabled {
		t.Fatal("expected metrics enabled by default")
	}
	if cfg.RateLimitRPS != 0 {
		t.Fatalf("expected rate limiting disabled, got %v", cfg.RateLimitRPS)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("expected 15s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_PortFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9999 {
		t.Fatalf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.Addr() != "0.0.0.0:9999" {
		t.Fatalf("expected addr 0.0.0.0:9999, got %s", cfg.Addr())
	}
}

func TestLoad_InvalidValuesFailFast(t *testing.T) {
	cases := []struct {
		name, key, value string
	}{
		{"non-numeric port", "PORT", "http"},
		{"negative port", "PORT", "-1"},
		{"port too large", "PORT", "70000"},
		{"unknown log level", "LOG_LEVEL", "chatty"},
		{"bad metrics flag", "METRICS_ENABLED", "maybe"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			if !errors.Is(err, domain.ErrStartup) {
				t.Fatalf("expected ErrStartup, got %v", err)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("STATIC_DIR", "/srv/game")
	t.Setenv("INDEX_FILE", "/srv/game/index.html")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("READ_TIMEOUT", "1s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:8080" {
		t.Fatalf("unexpected addr %s", cfg.Addr())
	}
	if cfg.StaticDir != "/srv/game" || cfg.IndexFile != "/srv/game/index.html" {
		t.Fatalf("unexpected asset paths: %q %q", cfg.StaticDir, cfg.IndexFile)
	}
	if cfg.LogLevel != zapcore.DebugLevel {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
	if cfg.MetricsEnabled {
		t.Fatal("expected metrics disabled")
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.ReadTimeout != time.Second {
		t.Fatalf("expected 1s read timeout, got %s", cfg.ReadTimeout)
	}
}
