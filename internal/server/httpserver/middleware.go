package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/server/httpserver/handler"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
	"github.com/yndnr/hublink-go/pkg/token"
)

// maxRequestIDLength bounds client supplied request ids.
const maxRequestIDLength = 64

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// HTTPObserver records request metrics.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestID tags each request with an id, reusing X-Request-ID when the
// client sent a usable one and minting a ULID otherwise. The id and a
// request logger are placed in the context.
func RequestID(l logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" || len(requestID) > maxRequestIDLength {
				requestID = ulid.Make().String()
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := logger.WithRequestID(r.Context(), requestID)
			ctx = logger.WithLogger(ctx, l)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recover recovers from panics and returns a 500 envelope.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.L(r.Context()).Error("panic recovered",
						"error", rec,
						"path", r.URL.Path,
					)
					writeError(w, r, http.StatusInternalServerError, domain.ErrInternalServer)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Audit logs each completed request and reports it to obs, which may be nil.
// The route label is the chi route pattern, so ids in paths do not
// multiply metric series.
func Audit(obs HTTPObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			elapsed := time.Since(start)
			route := routePattern(r)
			if obs != nil {
				obs.ObserveHTTP(r.Method, route, wrapped.statusCode, elapsed)
			}

			attrs := []any{
				"method", r.Method,
				"route", route,
				"status", wrapped.statusCode,
				"duration_ms", elapsed.Milliseconds(),
				"client_ip", getClientIP(r),
			}
			l := logger.L(r.Context())
			switch {
			case wrapped.statusCode >= 500:
				l.Error("request completed with error", attrs...)
			case wrapped.statusCode >= 400:
				l.Warn("request completed with client error", attrs...)
			default:
				l.Info("request completed", attrs...)
			}
		})
	}
}

// APIKeyAuth requires the shared API key in "Authorization: Bearer <key>"
// or "X-API-Key: <key>". An empty key disables the check.
func APIKeyAuth(apiKey string) Middleware {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := extractAPIKey(r)
			if presented == "" {
				writeError(w, r, http.StatusUnauthorized, domain.ErrAPIKeyMissing)
				return
			}
			if !token.Equal(presented, apiKey) {
				logger.L(r.Context()).Warn("rejected api key", "client_ip", getClientIP(r), "path", r.URL.Path)
				writeError(w, r, http.StatusUnauthorized, domain.ErrAPIKeyInvalid)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractAPIKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return r.Header.Get("X-API-Key")
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.statusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func writeError(w http.ResponseWriter, r *http.Request, status int, de *domain.DomainError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", de.Code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(handler.NewErrorResponse(logger.RequestIDFromContext(r.Context()), de.Code, de.Message))
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
