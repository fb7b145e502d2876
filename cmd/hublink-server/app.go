package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yndnr/hublink-go/internal/bot"
	"github.com/yndnr/hublink-go/internal/core/service"
	"github.com/yndnr/hublink-go/internal/infra/tlsroots"
	"github.com/yndnr/hublink-go/internal/server/config"
	"github.com/yndnr/hublink-go/internal/server/httpserver"
	"github.com/yndnr/hublink-go/internal/server/httpserver/handler"
	"github.com/yndnr/hublink-go/internal/storage/memory"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
	"github.com/yndnr/hublink-go/internal/telemetry/metric"
)

// app is the wired server process. The registry is created here and lives
// until the process exits; nothing is persisted.
type app struct {
	metrics  *metric.Registry
	registry *service.Registry
	accounts *memory.AccountStore
	links    *service.LinkService
	sweeper  *service.Sweeper
	handler  *handler.Handler
	router   http.Handler
	server   *httpserver.Server
	reloader *tlsroots.Reloader
}

func newApp(cfg *config.ServerConfig, log logger.Logger) (*app, error) {
	a := &app{metrics: metric.NewRegistry()}

	a.registry = service.NewRegistry(memory.NewLinkTokenStore(),
		service.WithObserver(a.metrics),
		service.WithLogger(log.With("component", "registry")),
	)
	a.accounts = memory.NewAccountStore()
	a.metrics.MustRegister(metric.NewCollector(
		metric.SizerFunc(a.registry.Len),
		metric.SizerFunc(a.accounts.Count),
	))

	a.sweeper = service.NewSweeper(a.registry,
		service.WithSweeperLogger(log.With("component", "sweeper")),
	)

	var notifier service.Notifier
	if cfg.Bot.WebhookURL != "" {
		notifier = bot.NewNotifier(bot.NewWebhookMessenger(cfg.Bot.WebhookURL, cfg.Bot.WebhookSecret, nil))
		log.Info("link confirmations enabled", "webhook", cfg.Bot.WebhookURL)
	}

	a.links = service.NewLinkService(a.registry, a.accounts, &service.LinkServiceConfig{
		BaseURL:      cfg.Link.BaseURL,
		CallbackPath: cfg.Link.CallbackPath,
		Notifier:     notifier,
		Observer:     a.metrics,
		Logger:       log.With("component", "links"),
	})

	a.handler = handler.New(handler.Config{
		Links:         a.links,
		HubUserHeader: cfg.Link.HubUserHeader,
		LoginURL:      cfg.Link.LoginURL,
		Logger:        log,
	})

	a.router = httpserver.NewRouter(&httpserver.RouterConfig{
		Handler:             a.handler,
		APIKey:              cfg.Security.APIKey,
		CallbackPath:        cfg.Link.CallbackPath,
		Metrics:             a.metrics.Handler(),
		MetricsAuthRequired: cfg.Security.MetricsAuth,
		Observer:            a.metrics,
		Logger:              log.With("component", "http"),
	})

	if cfg.Security.APIKey == "" {
		log.Warn("security.api_key is empty, /api and /admin are unauthenticated")
	}

	var opts []httpserver.Option
	if cfg.Server.HTTP.TLSEnabled() {
		r, err := tlsroots.NewReloader(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile,
			log.With("component", "tls"))
		if err != nil {
			return nil, fmt.Errorf("load TLS key pair: %w", err)
		}
		a.reloader = r
		opts = append(opts, httpserver.WithTLSConfig(r.ServerConfig()))
	}
	a.server = httpserver.New(cfg.Server.HTTP.Addr, a.router, opts...)

	return a, nil
}

// start launches the background work: the sweeper, and the certificate
// watcher when TLS is on.
func (a *app) start(ctx context.Context) {
	a.sweeper.Start(ctx)
	if a.reloader != nil {
		if err := a.reloader.Watch(); err != nil {
			logger.L(ctx).Warn("certificate watch disabled", "error", err)
		}
	}
}

func (a *app) stopTLS() error {
	if a.reloader == nil {
		return nil
	}
	return a.reloader.Stop()
}
