package httpserver

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithTLSConfig serves HTTPS with cfg. The config must supply certificates,
// typically through GetCertificate.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *Server) {
		s.httpServer.TLSConfig = cfg
	}
}

// New creates a new HTTP server.
func New(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
		handler: handler,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TLS reports whether the server serves HTTPS.
func (s *Server) TLS() bool {
	return s.httpServer.TLSConfig != nil
}

// ListenAndServe listens on the configured address and serves until Shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on ln, over TLS when configured.
func (s *Server) Serve(ln net.Listener) error {
	if s.TLS() {
		return s.httpServer.ServeTLS(ln, "", "")
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
