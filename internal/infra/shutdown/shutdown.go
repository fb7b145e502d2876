package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// DefaultTimeout bounds the total time spent running hooks.
const DefaultTimeout = 30 * time.Second

// Hook releases one component.
type Hook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// Handler handles graceful shutdown.
type Handler struct {
	timeout time.Duration
	logger  logger.Logger

	mu    sync.Mutex
	hooks []namedHook

	trigger     chan string
	triggerOnce sync.Once
	done        chan struct{}
}

// NewHandler creates a new shutdown handler. A non-positive timeout uses DefaultTimeout.
func NewHandler(timeout time.Duration, l logger.Logger) *Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if l == nil {
		l = logger.Default()
	}
	return &Handler{
		timeout: timeout,
		logger:  l,
		trigger: make(chan string, 1),
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a hook. Hooks run in reverse order of registration.
func (h *Handler) OnShutdown(name string, hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, namedHook{name: name, fn: hook})
}

// Trigger starts shutdown without a signal, e.g. after a fatal server error.
func (h *Handler) Trigger(reason string) {
	h.triggerOnce.Do(func() {
		h.trigger <- reason
	})
}

// Wait blocks until a signal or Trigger, then runs the hooks.
// The returned error joins every hook failure.
func (h *Handler) Wait() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		h.logger.Info("shutdown signal received", "signal", sig.String())
	case reason := <-h.trigger:
		h.logger.Info("shutdown triggered", "reason", reason)
	}

	return h.run()
}

func (h *Handler) run() error {
	defer close(h.done)

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]namedHook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hk := hooks[i]
		start := time.Now()
		if err := hk.fn(ctx); err != nil {
			h.logger.Error("shutdown hook failed", "hook", hk.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", hk.name, err))
			continue
		}
		h.logger.Debug("shutdown hook finished", "hook", hk.name, "elapsed", time.Since(start))
	}

	return errors.Join(errs...)
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
