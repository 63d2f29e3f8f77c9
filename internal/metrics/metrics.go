package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/momentum/tetris-vault-toast/internal/domain"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	IndexReads        *prometheus.CounterVec
	RateLimitRejected prometheus.Counter
	BuildInfo         *prometheus.GaugeVec
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),

		IndexReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "index_reads_total",
			Help: "Reads of the root HTML document from disk, by result.",
		}, []string{"result"}),

		RateLimitRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ratelimit_rejected_total",
			Help: "Requests rejected by the per-client rate limiter.",
		}),

		BuildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "momentum_build_info",
			Help: "Constant 1, labelled with the application name and version.",
		}, []string{"app", "version"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.IndexReads,
		m.RateLimitRejected,
		m.BuildInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.BuildInfo.WithLabelValues(domain.AppName, domain.AppVersion).Set(1)

	return m
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(latency.Seconds())
}

// IndexHook returns the callback expected by handler.NewIndexHandler.
// Keeps the prometheus import out of the handler package.
func (m *Metrics) IndexHook() func(error) {
	return func(err error) {
		if err != nil {
			m.IndexReads.WithLabelValues("error").Inc()
			return
		}
		m.IndexReads.WithLabelValues("ok").Inc()
	}
}

// RejectHook returns the callback expected by middleware.RateLimit.
func (m *Metrics) RejectHook() func() {
	return m.RateLimitRejected.Inc
}
