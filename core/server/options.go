package server

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"

	"github.com/joelittlejohn/ring-jetty9-adapter/core/dispatch"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/ws"
)

// Option configures server behavior beyond the declarative Config.
type Option func(*Server)

// WithLogger sets a custom logger for server operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWebSockets registers path-scoped websocket routes, evaluated in the
// given order ahead of the catch-all handler.
func WithWebSockets(routes ...ws.Route) Option {
	return func(s *Server) {
		s.routes = append(s.routes, routes...)
	}
}

// WithConfigurator attaches a low-level customization hook, called with each
// connector's underlying http.Server after it is built and before it binds.
func WithConfigurator(fn func(*http.Server)) Option {
	return func(s *Server) {
		s.configurator = fn
	}
}

// WithTLSConfig supplies in-memory TLS material for the secure connector,
// overriding the PEM file paths in the configuration.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *Server) {
		s.tlsOverride = cfg
	}
}

// WithCodec replaces the default net/http protocol codec used by the
// dispatch bridge.
func WithCodec(c dispatch.Codec) Option {
	return func(s *Server) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithShutdownTimeout bounds graceful connection draining on Stop.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdown = d
		}
	}
}
