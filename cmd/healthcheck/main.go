// Command healthcheck probes a locally running server and exits 0 when it
// reports healthy, 1 otherwise. Intended for container HEALTHCHECK.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/momentum/tetris-vault-toast/internal/config"
	"github.com/momentum/tetris-vault-toast/internal/probe"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", zap.Error(err))
		os.Exit(1)
	}

	base := fmt.Sprintf("http://127.0.0.1:%d", cfg.Port)
	if _, err := probe.New(base, cfg.HealthcheckTimeout).Check(context.Background()); err != nil {
		logger.Error("health check failed", zap.String("target", base), zap.Error(err))
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
}
