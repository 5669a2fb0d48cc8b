package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/flowsynth/logger"
	"github.com/kbukum/flowsynth/observability"
	"github.com/kbukum/flowsynth/server/middleware"
)

type staticChecker observability.Health

func (s staticChecker) CheckHealth(context.Context) observability.Health {
	return observability.Health(s)
}

func newTestServer(checkers ...observability.HealthChecker) *Server {
	gin.SetMode(gin.TestMode)
	cfg := Config{}
	cfg.ApplyDefaults()
	s := New(cfg, logger.Nop())
	s.RegisterDefaultEndpoints("flowsynth", checkers...)
	return s
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checker    staticChecker
		wantCode   int
		wantStatus observability.HealthStatus
	}{
		{"up", staticChecker{Name: "generator", Status: observability.HealthStatusUp}, http.StatusOK, observability.HealthStatusUp},
		{"degraded", staticChecker{Name: "generator", Status: observability.HealthStatusDegraded}, http.StatusOK, observability.HealthStatusDegraded},
		{"down", staticChecker{Name: "generator", Status: observability.HealthStatusDown}, http.StatusServiceUnavailable, observability.HealthStatusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(newTestServer(tt.checker), http.MethodGet, "/health")
			if rr.Code != tt.wantCode {
				t.Fatalf("status code = %d, want %d", rr.Code, tt.wantCode)
			}
			var body struct {
				Service    string                `json:"service"`
				Status     string                `json:"status"`
				Components []observability.Health `json:"components"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Service != "flowsynth" || body.Status != string(tt.wantStatus) || len(body.Components) != 1 {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	rr := serve(newTestServer(), http.MethodGet, "/version")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["version"] == "" || body["go_version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestMiddlewareAppliesToGinAndMounts(t *testing.T) {
	s := newTestServer()
	s.GinEngine().GET("/boom", func(*gin.Context) { panic("boom") })
	s.Handle("/mounted/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if logger.RequestIDFromContext(r.Context()) == "" {
			t.Error("mounted handler has no request id")
		}
		w.WriteHeader(http.StatusAccepted)
	}))

	rr := serve(s, http.MethodGet, "/boom")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("panic route status = %d, want 500", rr.Code)
	}
	if rr.Header().Get(middleware.HeaderRequestID) == "" {
		t.Error("missing request id header")
	}

	rr = serve(s, http.MethodGet, "/mounted/x")
	if rr.Code != http.StatusAccepted {
		t.Errorf("mounted status = %d, want 202", rr.Code)
	}
}

func TestConfig(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.Port != 8080 || c.MaxBodySize != "1MB" || c.WriteTimeout != 45 {
		t.Errorf("defaults = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if c.Addr() != ":8080" {
		t.Errorf("Addr() = %q", c.Addr())
	}
	bad := Config{Port: 70000}
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted port 70000")
	}
}

func TestStartStop(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Port: 0}
	cfg.ApplyDefaults()
	cfg.Port = 0
	s := New(cfg, logger.Nop())
	s.RegisterDefaultEndpoints("flowsynth")

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}
