package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/yndnr/hublink-go/internal/infra/buildinfo"
	"github.com/yndnr/hublink-go/internal/infra/confloader"
	"github.com/yndnr/hublink-go/internal/infra/shutdown"
	"github.com/yndnr/hublink-go/internal/server/config"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		addr        = flag.String("addr", "", "HTTP listen address, overrides server.http.addr")
		logLevel    = flag.String("log-level", "", "Log level, overrides log.level")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("hublink-server %s\n", buildinfo.Get())
		return nil
	}

	overrides := flagOverrides(*addr, *logLevel)
	cfg, err := config.LoadWithOverrides(*configFile, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, logCloser, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logCloser.Close()

	log.Info("starting hublink-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile,
		"addr", cfg.Server.HTTP.Addr)
	log.Debug("effective config", "config", config.Sanitize(cfg))

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.start(ctx)

	// Hooks run in reverse order of registration.
	shutdownHandler.OnShutdown("tls-reloader", func(context.Context) error {
		return a.stopTLS()
	})
	shutdownHandler.OnShutdown("sweeper", func(context.Context) error {
		a.sweeper.Stop()
		return nil
	})
	shutdownHandler.OnShutdown("http", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return a.server.Shutdown(ctx)
	})

	if *configFile != "" {
		watcher, err := watchConfig(*configFile, overrides, log)
		if err != nil {
			log.Warn("config watch disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config-watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	// Registered last so /ready reports 503 before anything stops.
	shutdownHandler.OnShutdown("readiness", func(context.Context) error {
		a.handler.Drain()
		return nil
	})

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr, "tls", a.server.TLS())
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			shutdownHandler.Trigger("http server failed")
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully", "tokens_discarded", a.registry.Len())
	return nil
}

func initLogger(cfg *config.ServerConfig) (logger.Logger, io.Closer, error) {
	log, closer, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
		File: logger.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
	})
	if err != nil {
		return nil, nil, err
	}
	logger.SetDefault(log)
	return log, closer, nil
}

// flagOverrides maps the non-empty command-line overrides to config keys.
func flagOverrides(addr, logLevel string) map[string]any {
	overrides := map[string]any{}
	if addr != "" {
		overrides["server.http.addr"] = addr
	}
	if logLevel != "" {
		overrides["log.level"] = logLevel
	}
	return overrides
}

// watchConfig re-reads the config file on change and applies log.level.
// Other settings need a restart. Flag overrides keep winning over the file.
func watchConfig(path string, overrides map[string]any, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}
	w.OnChange(func(string) {
		reloadLogLevel(path, overrides, log)
	})
	w.StartAsync()
	return w, nil
}

func reloadLogLevel(path string, overrides map[string]any, log logger.Logger) {
	cfg, err := config.LoadWithOverrides(path, overrides)
	if err != nil {
		log.Warn("config reload rejected", "error", err)
		return
	}
	if cfg.Log.Level == logger.GetLevel() {
		return
	}
	logger.SetLevel(cfg.Log.Level)
	log.Info("log level changed", "level", logger.GetLevel())
}
