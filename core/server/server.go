package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joelittlejohn/ring-jetty9-adapter/core/config"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/dispatch"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/transport"
	"github.com/joelittlejohn/ring-jetty9-adapter/core/ws"
)

// State is the server lifecycle phase. Stopped is terminal.
type State int

const (
	StateUnstarted State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Server owns the connection limiter, the bound connectors and the handler
// chain. Both are built during Start and torn down atomically on Stop; no
// partial state is exposed in between. Safe for concurrent use.
type Server struct {
	mu           sync.Mutex
	cfg          config.Config
	settings     transport.Settings
	logger       *slog.Logger
	shutdown     time.Duration
	routes       []ws.Route
	configurator func(*http.Server)
	tlsOverride  *tls.Config
	codec        dispatch.Codec

	handler  http.Handler
	state    State
	bound    []*transport.Bound
	serving  chan struct{}
	serveErr error
}

// New builds a server hosting h. The handler may be any of:
//
//   - dispatch.Handler (or a func(*dispatch.Request) any): synchronous dispatch
//   - dispatch.AsyncHandler (or the equivalent func type): asynchronous dispatch
//   - http.Handler: used as the catch-all directly
//
// Unset configuration fields receive their documented defaults, then the
// configuration is validated here, before any connector binds.
func New(h any, cfg config.Config, opts ...Option) (*Server, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		settings: transport.NewSettings(cfg),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown: DefaultShutdownTimeout,
		codec:    dispatch.DefaultCodec(),
	}
	for _, opt := range opts {
		opt(s)
	}
	catchAll, err := s.bridge(h)
	if err != nil {
		return nil, err
	}
	s.handler = catchAll
	return s, nil
}

// bridge adapts the handler argument to the connection-processing contract.
func (s *Server) bridge(h any) (http.Handler, error) {
	opts := []dispatch.Option{dispatch.WithCodec(s.codec), dispatch.WithLogger(s.logger)}
	switch h := h.(type) {
	case http.Handler:
		return h, nil
	case dispatch.Handler:
		return dispatch.Sync(h, opts...), nil
	case func(*dispatch.Request) any:
		return dispatch.Sync(h, opts...), nil
	case dispatch.AsyncHandler:
		return dispatch.Async(h, opts...), nil
	case func(*dispatch.Request, func(any), func(error)):
		return dispatch.Async(h, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedHandler, h)
	}
}

// Start builds the connection limiter, the connectors and the handler chain,
// binds every listener and begins serving. It returns once the server is
// accepting connections; use Join to park until Stop. A bind failure unwinds
// every listener bound so far, so the server never runs partially.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateRunning:
		return ErrAlreadyRunning
	case StateStopped:
		return ErrStopped
	}

	conns, err := transport.Connectors(s.cfg)
	if err != nil {
		return err
	}

	settings := s.settings
	settings.Listen = newLimiter(s.cfg).listen

	handler := newChain(s.routes, ws.Options{
		ReadBufferSize:  settings.RequestHeaderSize,
		WriteBufferSize: settings.OutputBufferSize,
		IdleTimeout:     s.cfg.WSMaxIdleTime,
		Logger:          s.logger,
	}, s.handler)

	var bound []*transport.Bound
	for _, c := range conns {
		if s.tlsOverride != nil && c.Secure() {
			c.TLS = s.tlsOverride
		}
		b, err := transport.Bind(c, handler, settings, s.logger)
		if err != nil {
			for _, prev := range bound {
				_ = prev.Listener.Close()
			}
			return err
		}
		if s.configurator != nil {
			s.configurator(b.Server)
		}
		bound = append(bound, b)
	}

	s.bound = bound
	s.serving = make(chan struct{})
	g := new(errgroup.Group)
	for _, b := range bound {
		s.logger.Info("connector bound",
			"addr", b.Listener.Addr().String(), "stack", b.Connector.Stack)
		g.Go(b.Serve)
	}
	go func() {
		err := g.Wait()
		s.mu.Lock()
		s.serveErr = err
		s.mu.Unlock()
		close(s.serving)
	}()

	s.state = StateRunning
	s.logger.Info("server started")
	return nil
}

// Join parks the caller until serving ends, normally via Stop elsewhere.
// It returns the first unexpected serve error, if any.
func (s *Server) Join() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotRunning
	}
	serving := s.serving
	s.mu.Unlock()

	<-serving

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serveErr
}

// Stop unbinds every connector, drains in-flight exchanges within the
// shutdown timeout and releases the connection limiter. Stopping a server
// that is not running is reported via ErrNotRunning, never fatal; the server
// is left stopped either way.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.state = StateStopped
		s.mu.Unlock()
		s.logger.Warn("stop requested but server is not running")
		return ErrNotRunning
	}
	s.state = StateStopped
	bound := s.bound
	serving := s.serving
	s.bound = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	var stopErr error
	for _, b := range bound {
		if err := b.Shutdown(ctx); err != nil {
			s.logger.Error("connector shutdown error",
				"addr", b.Connector.Addr(), "error", err)
			if stopErr == nil {
				stopErr = err
			}
		}
	}
	<-serving

	s.logger.Info("server stopped")
	return stopErr
}

// State returns the current lifecycle phase.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Addrs returns the addresses of the bound listeners while running. Useful
// when connectors bind ephemeral ports.
func (s *Server) Addrs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrs := make([]string, 0, len(s.bound))
	for _, b := range s.bound {
		addrs = append(addrs, b.Listener.Addr().String())
	}
	return addrs
}

// Start builds and starts a server hosting h. With cfg.Join set it parks the
// caller until the server is stopped elsewhere, then returns the handle;
// otherwise it returns immediately with the server accepting connections.
func Start(h any, cfg config.Config, opts ...Option) (*Server, error) {
	srv, err := New(h, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := srv.Start(); err != nil {
		return nil, err
	}
	if cfg.Join {
		if err := srv.Join(); err != nil {
			return srv, err
		}
	}
	return srv, nil
}

// Stop stops the given server. Safe on nil and non-running handles.
func Stop(srv *Server) error {
	if srv == nil {
		return ErrNotRunning
	}
	return srv.Stop()
}
