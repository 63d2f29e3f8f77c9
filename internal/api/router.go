package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/momentum/tetris-vault-toast/internal/api/handler"
	apimw "github.com/momentum/tetris-vault-toast/internal/api/middleware"
	"github.com/momentum/tetris-vault-toast/internal/metrics"
	"github.com/momentum/tetris-vault-toast/internal/site"
)

const (
	HealthPath  = "/api/health"
	MetricsPath = "/metrics"
)

// Deps carries everything the router needs. Limiter and Gatherer are
// optional: a nil Limiter disables rate limiting and a nil Gatherer leaves
// /metrics unmounted.
type Deps struct {
	Site     *site.Site
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Limiter  apimw.Limiter
	Logger   *zap.Logger
}

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(apimw.CorrelationID)
	r.Use(apimw.RequestLogger(d.Logger))
	r.Use(apimw.Metrics(d.Metrics))
	if d.Limiter != nil {
		// health probes are never throttled
		r.Use(apimw.RateLimit(d.Limiter, []string{HealthPath}, d.Metrics.RejectHook(), handler.TooManyRequests))
	}

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// --- handler instances ---
	ih := handler.NewIndexHandler(d.Site, d.Metrics.IndexHook(), d.Logger)
	sh := handler.NewStaticHandler(d.Site, d.Logger)
	hh := handler.NewHealthHandler()

	// --- routes ---
	r.Get("/", ih.Index)
	r.Get("/static/*", sh.Serve)
	r.Head("/static/*", sh.Serve)
	r.Get(HealthPath, hh.Health)

	if d.Gatherer != nil {
		r.Handle(MetricsPath, promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
