package ws

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Options carries the server-level settings a route handler needs: buffer
// sizes from the transport configuration and the idle timeout for upgraded
// connections.
type Options struct {
	ReadBufferSize  int
	WriteBufferSize int
	IdleTimeout     time.Duration
	Logger          *slog.Logger
}

// IsUpgrade reports whether a request is a genuine websocket upgrade. The
// handler chain uses it to decide whether a path-scoped route claims a
// request or lets it fall through to the catch-all.
func IsUpgrade(r *http.Request) bool {
	return websocket.IsWebSocketUpgrade(r)
}

// NewHandler builds the http.Handler for one websocket route: it resolves
// the route's callback set (static or per-request), performs the upgrade and
// runs the session's read loop on the serving goroutine until the peer
// closes or the idle timeout expires.
func NewHandler(route Route, o Options) http.Handler {
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	upgrader := &websocket.Upgrader{
		ReadBufferSize:  o.ReadBufferSize,
		WriteBufferSize: o.WriteBufferSize,
		// Origin policy belongs to the application; the adapter accepts all.
		CheckOrigin: func(*http.Request) bool { return true },
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg, err := route.resolve(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the handshake error response.
			logger.WarnContext(r.Context(), "websocket upgrade failed",
				"path", r.URL.Path, "error", err)
			return
		}
		s := newSession(conn, r, o.IdleTimeout)
		runSession(s, cfg)
	})
}

// runSession drives the read loop, dispatching frames to the callbacks.
func runSession(s *session, cfg *Config) {
	defer func() {
		s.connected.Store(false)
		_ = s.conn.Close()
	}()

	s.refreshDeadline()
	if cfg.OnConnect != nil {
		cfg.OnConnect(s)
	}

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			s.connected.Store(false)
			if ce, ok := err.(*websocket.CloseError); ok {
				if cfg.OnClose != nil {
					cfg.OnClose(s, ce.Code, ce.Text)
				}
				return
			}
			if cfg.OnError != nil {
				cfg.OnError(s, err)
			}
			if cfg.OnClose != nil {
				cfg.OnClose(s, websocket.CloseAbnormalClosure, err.Error())
			}
			return
		}
		s.refreshDeadline()

		switch msgType {
		case websocket.TextMessage:
			if cfg.OnText != nil {
				cfg.OnText(s, string(data))
			}
		case websocket.BinaryMessage:
			if cfg.OnBytes != nil {
				cfg.OnBytes(s, data)
			}
		}
	}
}
