package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

type observation struct {
	method, route string
	status        int
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (o *recordingObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	o.mu.Lock()
	o.obs = append(o.obs, observation{method, route, status})
	o.mu.Unlock()
}

func (o *recordingObserver) last() observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.obs) == 0 {
		return observation{}
	}
	return o.obs[len(o.obs)-1]
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := RequestID(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(seen) != 26 {
		t.Errorf("request id %q is not a ULID", seen)
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Errorf("header = %q, context = %q", rec.Header().Get("X-Request-ID"), seen)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	h := RequestID(logger.Discard())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-req-1" {
		t.Errorf("X-Request-ID = %q, want client-req-1", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", maxRequestIDLength+1))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); len(got) != 26 {
		t.Errorf("oversized id not replaced, got %q", got)
	}
}

func TestRecover(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if got := rec.Header().Get("X-Error-Code"); got != domain.ErrInternalServer.Code {
		t.Errorf("X-Error-Code = %q", got)
	}
}

func TestAudit_ReportsStatus(t *testing.T) {
	obs := &recordingObserver{}
	h := Audit(obs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK) // ignored
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))

	got := obs.last()
	if got.status != http.StatusTeapot || got.method != http.MethodPost {
		t.Errorf("observation = %+v", got)
	}
	if got.route != "unmatched" {
		t.Errorf("route = %q, want unmatched outside chi", got.route)
	}
}

func TestAudit_ImplicitOK(t *testing.T) {
	obs := &recordingObserver{}
	h := Audit(obs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hi"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got := obs.last().status; got != http.StatusOK {
		t.Errorf("status = %d, want 200", got)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	const key = "0123456789abcdef0123"
	h := APIKeyAuth(key)(okHandler())

	tests := []struct {
		name     string
		header   string
		value    string
		want     int
		wantCode string
	}{
		{"bearer", "Authorization", "Bearer " + key, http.StatusOK, ""},
		{"x-api-key", "X-API-Key", key, http.StatusOK, ""},
		{"missing", "", "", http.StatusUnauthorized, domain.ErrAPIKeyMissing.Code},
		{"wrong", "X-API-Key", "nope", http.StatusUnauthorized, domain.ErrAPIKeyInvalid.Code},
		{"wrong bearer", "Authorization", "Bearer nope", http.StatusUnauthorized, domain.ErrAPIKeyInvalid.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/x", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if got := rec.Header().Get("X-Error-Code"); got != tt.wantCode {
				t.Errorf("X-Error-Code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestAPIKeyAuth_Disabled(t *testing.T) {
	h := APIKeyAuth("")(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/x", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with auth disabled", rec.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"remote", "192.0.2.1:1234", "", "", "192.0.2.1"},
		{"ipv6 remote", "[::1]:8080", "", "", "::1"},
		{"forwarded", "10.0.0.1:1", "203.0.113.7, 10.0.0.1", "", "203.0.113.7"},
		{"real ip", "10.0.0.1:1", "", "198.51.100.2", "198.51.100.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
