package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/momentum/tetris-vault-toast/internal/config"
	"github.com/momentum/tetris-vault-toast/internal/domain"
	"github.com/momentum/tetris-vault-toast/internal/server"
)

func main() {
	root := &cobra.Command{
		Use:           "server",
		Short:         "Serve the Momentum Tetris demo page",
		Long:          "Serves the game page, its static assets, and a health endpoint.\nAll configuration comes from environment variables (PORT, STATIC_DIR, ...).",
		Version:       domain.AppVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		logger, _ := zap.NewProduction()
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// ---- logging ----
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	logger = logger.With(zap.String("app", domain.AppName), zap.String("version", domain.AppVersion))

	// ---- HTTP server ----
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialise server", zap.Error(err))
		return err
	}

	// Blocks until SIGINT/SIGTERM, then drains in-flight requests.
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		return err
	}
	return nil
}
