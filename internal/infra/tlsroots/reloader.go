package tlsroots

import (
	"crypto/tls"
	"fmt"
	"sync"

	"github.com/yndnr/hublink-go/internal/infra/confloader"
	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// Reloader serves a server key pair and reloads it when the files change.
type Reloader struct {
	certFile string
	keyFile  string
	logger   logger.Logger

	mu   sync.RWMutex
	cert *tls.Certificate

	watcher *confloader.Watcher
}

// NewReloader loads the key pair once. Call Watch to follow file changes.
func NewReloader(certFile, keyFile string, l logger.Logger) (*Reloader, error) {
	if l == nil {
		l = logger.Default()
	}
	r := &Reloader{certFile: certFile, keyFile: keyFile, logger: l}
	if err := r.Reload(); err != nil {
		return nil, fmt.Errorf("tlsroots: initial load: %w", err)
	}
	return r, nil
}

// Reload reads the key pair from disk. On failure the previous pair stays active.
func (r *Reloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(r.certFile, r.keyFile)
	if err != nil {
		return fmt.Errorf("load key pair: %w", err)
	}
	r.mu.Lock()
	r.cert = &cert
	r.mu.Unlock()
	return nil
}

// Watch starts watching the cert and key files in the background.
func (r *Reloader) Watch() error {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(r.logger))
	if err != nil {
		return fmt.Errorf("tlsroots: create watcher: %w", err)
	}
	for _, f := range []string{r.certFile, r.keyFile} {
		if err := w.Watch(f); err != nil {
			w.Stop()
			return fmt.Errorf("tlsroots: watch %s: %w", f, err)
		}
	}
	w.OnChange(func(path string) {
		if err := r.Reload(); err != nil {
			r.logger.Error("certificate reload failed", "file", path, "error", err)
			return
		}
		r.logger.Info("certificate reloaded", "cert_file", r.certFile)
	})
	w.StartAsync()
	r.watcher = w
	return nil
}

// Stop stops watching. It is a no-op if Watch was never called.
func (r *Reloader) Stop() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Stop()
}

// GetCertificate implements tls.Config.GetCertificate.
func (r *Reloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cert, nil
}

// ServerConfig returns a server TLS configuration backed by the reloader.
func (r *Reloader) ServerConfig() *tls.Config {
	return &tls.Config{
		MinVersion:     tls.VersionTLS12,
		GetCertificate: r.GetCertificate,
	}
}
