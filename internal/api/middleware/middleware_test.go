package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/exilekitchen/buildcraft/internal/api/middleware"
	pkgmw "github.com/exilekitchen/buildcraft/pkg/middleware"
)

func capture(t *testing.T, req *http.Request) (kitchen, user string) {
	t.Helper()
	h := middleware.SessionIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kitchen = pkgmw.GetKitchen(r.Context())
		user = pkgmw.GetUser(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return kitchen, user
}

func TestSessionIdentity(t *testing.T) {
	cases := []struct {
		name        string
		headers     map[string]string
		target      string
		wantKitchen string
		wantUser    string
	}{
		{"kitchen id header", map[string]string{"X-Kitchen-Id": "k1", "X-Kitchen": "k2", "X-User-Id": "u1"}, "/", "k1", "u1"},
		{"legacy kitchen header", map[string]string{"X-Kitchen": " k2 "}, "/", "k2", ""},
		{"query parameter", nil, "/?kitchen=k3", "k3", ""},
		{"nothing forwarded", nil, "/", pkgmw.DefaultKitchen, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			kitchen, user := capture(t, req)
			if kitchen != tc.wantKitchen {
				t.Errorf("kitchen = %q, want %q", kitchen, tc.wantKitchen)
			}
			if user != tc.wantUser {
				t.Errorf("user = %q, want %q", user, tc.wantUser)
			}
		})
	}
}

func TestLogger_PassesStatus(t *testing.T) {
	h := middleware.SessionIdentity(middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

// buildRouter mounts a parameterised route behind the given middleware, the
// way the API router nests /api/v1.
func buildRouter(mw ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/builds/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r
}

func TestTelemetry_SpanNamedByRoute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	// The package tracer delegates to the first provider installed globally.
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	rec := httptest.NewRecorder()
	buildRouter(middleware.Telemetry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/builds/b-42", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if got, want := spans[0].Name(), "GET /api/v1/builds/{id}"; got != want {
		t.Errorf("span name = %q, want %q", got, want)
	}
	var route string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == attribute.Key("http.route") {
			route = kv.Value.AsString()
		}
	}
	if route != "/api/v1/builds/{id}" {
		t.Errorf("http.route = %q", route)
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Error("X-Trace-Id header not set")
	}
}

func TestLogger_LogsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	rec := httptest.NewRecorder()
	buildRouter(middleware.Logger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/builds/b-42", nil))

	out := buf.String()
	if !strings.Contains(out, `"route":"/api/v1/builds/{id}"`) {
		t.Errorf("log line = %s, want route pattern", out)
	}
	if !strings.Contains(out, `"path":"/api/v1/builds/b-42"`) {
		t.Errorf("log line = %s, want raw path", out)
	}
}
