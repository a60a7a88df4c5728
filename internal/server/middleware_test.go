package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobmcallan/plano/internal/common"
)

func TestCORSMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := corsMiddleware(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS allow-origin header")
	}

	// Preflight short-circuits.
	req = httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight: expected 204, got %d", rec.Code)
	}
}

func TestCorrelationIDMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := correlationIDMiddleware(inner)

	t.Run("generates when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Header().Get("X-Correlation-ID") == "" {
			t.Error("expected generated correlation id")
		}
	})

	t.Run("propagates X-Request-ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if got := rec.Header().Get("X-Correlation-ID"); got != "req-123" {
			t.Errorf("expected req-123, got %q", got)
		}
	})
}

func TestUserContextMiddleware(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = common.ResolveUserID(r.Context())
	})
	handler := userContextMiddleware(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Plano-User-ID", "user42")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "user42" {
		t.Errorf("expected user42, got %q", seen)
	}

	// Without the header the default owner applies.
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if seen != "default" {
		t.Errorf("expected default, got %q", seen)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := recoveryMiddleware(common.NewSilentLogger())(inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 after panic, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("enforces burst", func(t *testing.T) {
		config := common.NewDefaultConfig()
		config.Server.RateLimit = 1
		config.Server.RateBurst = 2
		handler := rateLimitMiddleware(config)(inner)

		var statuses []int
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			statuses = append(statuses, rec.Code)
		}
		if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
			t.Errorf("expected first two requests to pass, got %v", statuses)
		}
		if statuses[2] != http.StatusTooManyRequests {
			t.Errorf("expected third request limited, got %v", statuses)
		}
	})

	t.Run("separate clients separate buckets", func(t *testing.T) {
		config := common.NewDefaultConfig()
		config.Server.RateLimit = 1
		config.Server.RateBurst = 1
		handler := rateLimitMiddleware(config)(inner)

		for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Errorf("client %s: expected 200, got %d", addr, rec.Code)
			}
		}
	})

	t.Run("disabled when limit is zero", func(t *testing.T) {
		config := common.NewDefaultConfig()
		config.Server.RateLimit = 0
		handler := rateLimitMiddleware(config)(inner)

		for i := 0; i < 50; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
			}
		}
	})
}
