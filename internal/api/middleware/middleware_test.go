package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/momentum/tetris-vault-toast/internal/api/middleware"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("hello"))
}

func TestCorrelationID(t *testing.T) {
	var seen string
	h := middleware.CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetCorrelationID(r.Context())
	}))

	t.Run("echoes incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.CorrelationHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get(middleware.CorrelationHeader); got != "abc-123" {
			t.Fatalf("expected echoed id, got %q", got)
		}
		if seen != "abc-123" {
			t.Fatalf("expected id in context, got %q", seen)
		}
	})

	t.Run("generates when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		got := rec.Header().Get(middleware.CorrelationHeader)
		if len(got) != 36 {
			t.Fatalf("expected a UUID, got %q", got)
		}
		if seen != got {
			t.Fatalf("context id %q does not match header %q", seen, got)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := middleware.CorrelationID(middleware.RequestLogger(zap.New(core))(http.HandlerFunc(okHandler)))

	req := httptest.NewRequest(http.MethodGet, "/static/tetris.js", nil)
	req.Header.Set(middleware.CorrelationHeader, "trace-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/static/tetris.js" {
		t.Fatalf("unexpected path field %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Fatalf("unexpected status field %v", fields["status"])
	}
	if fields["bytes"] != int64(5) {
		t.Fatalf("unexpected bytes field %v", fields["bytes"])
	}
	if fields["correlation_id"] != "trace-1" {
		t.Fatalf("unexpected correlation_id field %v", fields["correlation_id"])
	}
}

type observation struct {
	route, method string
	status        int
}

type recordingObserver struct {
	mu  sync.Mutex
	got []observation
}

func (o *recordingObserver) ObserveRequest(route, method string, status int, _ time.Duration) {
	o.mu.Lock()
	o.got = append(o.got, observation{route, method, status})
	o.mu.Unlock()
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	obs := &recordingObserver{}
	r := chi.NewRouter()
	r.Use(middleware.Metrics(obs))
	r.Get("/static/*", okHandler)

	for _, path := range []string{"/static/a.js", "/static/b.css", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	want := []observation{
		{"/static/*", http.MethodGet, 200},
		{"/static/*", http.MethodGet, 200},
		{"", http.MethodGet, 404},
	}
	if len(obs.got) != len(want) {
		t.Fatalf("expected %d observations, got %d", len(want), len(obs.got))
	}
	for i := range want {
		if obs.got[i] != want[i] {
			t.Fatalf("observation %d: expected %+v, got %+v", i, want[i], obs.got[i])
		}
	}
}

type budgetLimiter struct{ left map[string]int }

func (l *budgetLimiter) Allow(key string) bool {
	if l.left[key] <= 0 {
		return false
	}
	l.left[key]--
	return true
}

func TestRateLimit(t *testing.T) {
	lim := &budgetLimiter{left: map[string]int{"192.0.2.1": 1}}
	rejected := 0
	reject := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }
	h := middleware.RateLimit(lim, []string{"/api/health"}, func() { rejected++ }, reject)(http.HandlerFunc(okHandler))

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "192.0.2.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do("/"); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := do("/"); code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", code)
	}
	if code := do("/api/health"); code != http.StatusOK {
		t.Fatalf("exempt path: expected 200, got %d", code)
	}
	if rejected != 1 {
		t.Fatalf("expected onReject once, got %d", rejected)
	}
}
