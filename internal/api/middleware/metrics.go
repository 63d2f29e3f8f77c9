package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestObserver receives one observation per completed request.
// *metrics.Metrics satisfies it.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, latency time.Duration)
}

// Metrics records request count and latency labelled by the chi route
// pattern rather than the raw path, so /static/<file> stays one series.
func Metrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			obs.ObserveRequest(route, r.Method, statusOf(ww), time.Since(start))
		})
	}
}
