package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// Sweepable is anything with a sweep pass, usually *Registry.
type Sweepable interface {
	Sweep(ctx context.Context) int
}

// Sweeper runs Sweep periodically in its own goroutine until stopped.
type Sweeper struct {
	target   Sweepable
	interval time.Duration
	logger   logger.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
	stop      chan struct{}
	done      chan struct{}
}

// SweeperOption configures a Sweeper.
type SweeperOption func(*Sweeper)

// WithSweepInterval overrides domain.SweepInterval.
func WithSweepInterval(d time.Duration) SweeperOption {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithSweeperLogger sets the logger.
func WithSweeperLogger(l logger.Logger) SweeperOption {
	return func(s *Sweeper) {
		s.logger = l
	}
}

// NewSweeper creates a sweeper for target. It does nothing until Start.
func NewSweeper(target Sweepable, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		target:   target,
		interval: domain.SweepInterval,
		logger:   logger.Default(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start begins the sweep loop. The loop ends when ctx is cancelled or Stop is called.
// Calling Start more than once has no further effect.
func (s *Sweeper) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.started.Store(true)
		go s.run(ctx)
	})
}

// Stop stops scheduling sweeps and waits for the loop to exit.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	if s.started.Load() {
		<-s.done
	}
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("link token sweeper started", "interval", s.interval)

	for {
		select {
		case <-ticker.C:
			n := s.target.Sweep(ctx)
			if n > 0 {
				s.logger.Info("expired link tokens swept", "removed", n)
			} else {
				s.logger.Debug("expired link tokens swept", "removed", n)
			}
		case <-s.stop:
			s.logger.Info("link token sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("link token sweeper stopped", "reason", ctx.Err())
			return
		}
	}
}
