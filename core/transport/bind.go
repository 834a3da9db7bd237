package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/pires/go-proxyproto"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// serverName is advertised in the Server header when SendServerVersion is set.
const serverName = "ring-adapter"

// Bound is one live listener serving a connector's protocol stack. It is
// owned exclusively by the server process and torn down on stop.
type Bound struct {
	Connector Connector
	Listener  net.Listener
	Server    *http.Server
}

// Bind materializes a connector description: it opens the socket, folds the
// protocol stack over the listener and handler in order, and returns the
// bound listener without serving. Serving is the owner's call.
func Bind(c Connector, h http.Handler, s Settings, logger *slog.Logger) (*Bound, error) {
	handler := h
	if c.has(LayerH2C) {
		handler = h2c.NewHandler(handler, &http2.Server{
			IdleTimeout: c.IdleTimeout,
		})
	}

	srv := &http.Server{
		Addr:           c.Addr(),
		Handler:        shapeHeaders(handler, s),
		IdleTimeout:    c.IdleTimeout,
		MaxHeaderBytes: s.RequestHeaderSize,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	if c.Secure() {
		srv.TLSConfig = c.TLS.Clone()
		if c.has(LayerALPN) {
			if err := http2.ConfigureServer(srv, &http2.Server{IdleTimeout: c.IdleTimeout}); err != nil {
				return nil, fmt.Errorf("configure http/2 on %s: %w", c.Addr(), err)
			}
			srv.TLSConfig.NextProtos = alpnProtocols
		} else {
			srv.TLSConfig.NextProtos = []string{"http/1.1"}
		}
	}

	listen := s.Listen
	if listen == nil {
		listen = net.Listen
	}
	ln, err := listen("tcp", c.Addr())
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", c.Addr(), err)
	}
	if c.has(LayerProxy) {
		// The PROXY header must be consumed before any other layer reads
		// from the connection.
		ln = &proxyproto.Listener{
			Listener:          ln,
			ReadHeaderTimeout: c.IdleTimeout,
		}
	}
	if c.Secure() {
		ln = tls.NewListener(ln, srv.TLSConfig)
	}

	return &Bound{Connector: c, Listener: ln, Server: srv}, nil
}

// Serve accepts connections until the listener closes. A graceful shutdown
// is not an error.
func (b *Bound) Serve() error {
	err := b.Server.Serve(b.Listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting and drains in-flight exchanges until ctx expires.
func (b *Bound) Shutdown(ctx context.Context) error {
	return b.Server.Shutdown(ctx)
}

// shapeHeaders applies the response header policy: the Server header is
// emitted only when SendServerVersion is set, and the automatic Date header
// is suppressed unless SendDateHeader is set.
func shapeHeaders(next http.Handler, s Settings) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.SendServerVersion {
			w.Header().Set("Server", serverName)
		}
		if !s.SendDateHeader {
			w.Header()["Date"] = nil
		}
		next.ServeHTTP(w, r)
	})
}
