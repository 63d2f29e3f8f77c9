package middleware

import (
	"net"
	"net/http"
)

// Limiter decides whether a client key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// RateLimit rejects requests from clients over their budget with 429.
// Paths in exempt bypass the limiter entirely. onReject may be nil.
// Place after chi's RealIP so RemoteAddr reflects the real client.
func RateLimit(l Limiter, exempt []string, onReject func(), reject http.HandlerFunc) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] || l.Allow(clientKey(r)) {
				next.ServeHTTP(w, r)
				return
			}
			if onReject != nil {
				onReject()
			}
			reject(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
