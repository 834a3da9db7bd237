package server

import (
	"net"
	"sync"

	"github.com/joelittlejohn/ring-jetty9-adapter/core/config"
)

// limiter owns the shared worker pool standing in for the fixed thread pool
// of thread-per-connection servers. Every accepted connection, on any
// connector, takes a slot from the same pool and returns it on close.
// JobQueue adds accepted-but-waiting headroom on top of MaxThreads. Go's
// runtime grows and reaps the actual workers, so min-thread and idle-timeout
// sizing have no counterpart here.
type limiter struct {
	sem chan struct{}
}

func newLimiter(cfg config.Config) *limiter {
	slots := cfg.MaxThreads
	if slots <= 0 {
		slots = config.DefaultMaxThreads
	}
	if cfg.JobQueue > 0 {
		slots += cfg.JobQueue
	}
	return &limiter{sem: make(chan struct{}, slots)}
}

// listen opens a socket whose accepted connections draw from the shared
// pool. It is wired into the transport settings so the limit applies beneath
// every protocol layer, including PROXY decoding and TLS.
func (l *limiter) listen(network, addr string) (net.Listener, error) {
	ln, err := net.Listen(network, addr)
	if err != nil {
		return nil, err
	}
	return &limitListener{Listener: ln, sem: l.sem, done: make(chan struct{})}, nil
}

// limitListener parks Accept while the pool is exhausted. Multiple listeners
// share one sem, so the cap holds across connectors.
type limitListener struct {
	net.Listener
	sem       chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

func (l *limitListener) acquire() bool {
	select {
	case <-l.done:
		return false
	case l.sem <- struct{}{}:
		return true
	}
}

func (l *limitListener) release() { <-l.sem }

func (l *limitListener) Accept() (net.Conn, error) {
	if !l.acquire() {
		// Closed while parked on the pool; surface the listener's error.
		c, err := l.Listener.Accept()
		if err != nil {
			return nil, err
		}
		_ = c.Close()
		return nil, net.ErrClosed
	}
	c, err := l.Listener.Accept()
	if err != nil {
		l.release()
		return nil, err
	}
	return &limitConn{Conn: c, release: l.release}, nil
}

func (l *limitListener) Close() error {
	err := l.Listener.Close()
	l.closeOnce.Do(func() { close(l.done) })
	return err
}

type limitConn struct {
	net.Conn
	releaseOnce sync.Once
	release     func()
}

func (c *limitConn) Close() error {
	err := c.Conn.Close()
	c.releaseOnce.Do(c.release)
	return err
}
