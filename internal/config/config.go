package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/momentum/tetris-vault-toast/internal/domain"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a default; invalid values for PORT, LOG_LEVEL and
// METRICS_ENABLED fail startup instead of falling back.
type Config struct {
	// Server
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Assets
	StaticDir string
	IndexFile string

	// Observability
	LogLevel       zapcore.Level
	MetricsEnabled bool

	// Per-client rate limiting; 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	HealthcheckTimeout time.Duration
}

func Load() (*Config, error) {
	port, err := getPort("PORT", 8080)
	if err != nil {
		return nil, err
	}

	level, err := getLevel("LOG_LEVEL", zapcore.InfoLevel)
	if err != nil {
		return nil, err
	}

	metricsEnabled, err := getBool("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	return &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            port,
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		StaticDir: getEnv("STATIC_DIR", "static"),
		IndexFile: getEnv("INDEX_FILE", "static/index.html"),

		LogLevel:       level,
		MetricsEnabled: metricsEnabled,

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 20),

		HealthcheckTimeout: getDuration("HEALTHCHECK_TIMEOUT", 2*time.Second),
	}, nil
}

// Addr is the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func getPort(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", domain.ErrStartup, key, v)
	}
	if n < 1 || n > 65535 {
		return 0, fmt.Errorf("%w: %s=%d is out of range 1-65535", domain.ErrStartup, key, n)
	}
	return n, nil
}

func getLevel(key string, defaultVal zapcore.Level) (zapcore.Level, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	lvl, err := zapcore.ParseLevel(v)
	if err != nil {
		return defaultVal, fmt.Errorf("%w: %s: %v", domain.ErrStartup, key, err)
	}
	return lvl, nil
}

func getBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal, fmt.Errorf("%w: %s=%q is not a boolean", domain.ErrStartup, key, v)
	}
	return b, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
