package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/server/httpserver/handler"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Handler serves the endpoints. Required.
	Handler *handler.Handler

	// APIKey guards /api and /admin. Empty disables the check.
	APIKey string

	// CallbackPath is the browser callback route.
	CallbackPath string

	// Metrics serves GET /metrics when set.
	Metrics http.Handler

	// MetricsAuthRequired puts /metrics behind the API key.
	MetricsAuthRequired bool

	// Observer records HTTP metrics. Optional.
	Observer HTTPObserver

	// Logger defaults to logger.Default().
	Logger logger.Logger
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		CallbackPath: "/link-discord",
	}
}

// NewRouter creates the HTTP router with all routes and middleware.
// Order: RequestID -> Audit -> Recover -> [APIKeyAuth] -> Handler.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := cfg.Handler
	l := cfg.Logger
	if l == nil {
		l = logger.Default()
	}
	callback := cfg.CallbackPath
	if callback == "" {
		callback = DefaultRouterConfig().CallbackPath
	}

	r := chi.NewRouter()
	r.Use(RequestID(l), Audit(cfg.Observer), Recover())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusNotFound, domain.NewDomainError("HL-SYS-4040", "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusMethodNotAllowed, domain.NewDomainError("HL-SYS-4050", "method not allowed"))
	})

	// Health endpoints, no authentication.
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	if cfg.Metrics != nil {
		if cfg.MetricsAuthRequired {
			r.With(APIKeyAuth(cfg.APIKey)).Method(http.MethodGet, "/metrics", cfg.Metrics)
		} else {
			r.Method(http.MethodGet, "/metrics", cfg.Metrics)
		}
	}

	// Browser callback, authenticated by the login proxy.
	r.Get(callback, h.LinkCallback)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(cfg.APIKey))

		r.Post("/link-tokens", h.IssueLinkToken)
		r.Post("/link-tokens/consume", h.ConsumeLinkToken)
		r.Post("/links", h.CreateLink)
		r.Get("/links/{chat_user_id}", h.GetLink)
		r.Get("/hub-users/{hub_user_id}/link", h.GetLinkByHubUser)
	})

	r.Route("/admin/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(cfg.APIKey))

		r.Get("/status/summary", h.AdminStatus)
		r.Post("/gc/trigger", h.AdminGC)
	})

	return r
}
