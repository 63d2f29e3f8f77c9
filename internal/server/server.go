// Package server assembles the HTTP surface from configuration and owns the
// listener lifecycle: bind, serve, and drain on shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/momentum/tetris-vault-toast/internal/api"
	"github.com/momentum/tetris-vault-toast/internal/config"
	"github.com/momentum/tetris-vault-toast/internal/domain"
	"github.com/momentum/tetris-vault-toast/internal/metrics"
	"github.com/momentum/tetris-vault-toast/internal/ratelimiter"
	"github.com/momentum/tetris-vault-toast/internal/site"
)

const (
	sweepInterval = time.Minute
	sweepIdle     = 10 * time.Minute
)

type Server struct {
	cfg     *config.Config
	srv     *http.Server
	limiter *ratelimiter.ClientLimiters
	logger  *zap.Logger
}

// New validates the asset layout and wires the router. Any failure wraps
// domain.ErrStartup.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s, err := site.New(cfg.StaticDir, cfg.IndexFile)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	deps := api.Deps{
		Site:    s,
		Metrics: metrics.New(reg),
		Logger:  logger,
	}
	if cfg.MetricsEnabled {
		deps.Gatherer = reg
	}

	var limiter *ratelimiter.ClientLimiters
	if cfg.RateLimitRPS > 0 {
		limiter = ratelimiter.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
		deps.Limiter = limiter
	}

	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      api.NewRouter(deps),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Handler exposes the fully wired router.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run binds the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("%w: listen on %s: %v", domain.ErrStartup, s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then stops
// accepting and waits up to ShutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	bgCtx, cancelBg := context.WithCancel(ctx)
	defer cancelBg()

	if s.limiter != nil {
		go s.limiter.Run(bgCtx, sweepInterval, sweepIdle, s.logger)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			zap.String("addr", ln.Addr().String()),
			zap.String("static_dir", s.cfg.StaticDir),
		)
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("server stopped cleanly")
	return nil
}
