package ws

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Session is one live websocket connection as seen by the callbacks.
// Send accepts a string (text frame) or a []byte (binary frame), mirroring
// the duck-shaped results of the dispatch bridge. Safe for concurrent use.
type Session interface {
	Send(msg any) error
	Close() error
	CloseWithStatus(code int, reason string) error
	RemoteAddr() net.Addr
	SetIdleTimeout(d time.Duration)
	IsConnected() bool
	Request() *http.Request
}

type session struct {
	writeMu   sync.Mutex // gorilla allows a single concurrent writer
	conn      *websocket.Conn
	req       *http.Request
	idle      atomic.Int64 // nanoseconds; 0 disables the deadline
	connected atomic.Bool
}

func newSession(conn *websocket.Conn, req *http.Request, idle time.Duration) *session {
	s := &session{conn: conn, req: req}
	s.idle.Store(int64(idle))
	s.connected.Store(true)
	return s
}

func (s *session) Send(msg any) error {
	if !s.connected.Load() {
		return ErrNotConnected
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	switch m := msg.(type) {
	case string:
		return s.conn.WriteMessage(websocket.TextMessage, []byte(m))
	case []byte:
		return s.conn.WriteMessage(websocket.BinaryMessage, m)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedMessage, msg)
	}
}

func (s *session) Close() error {
	return s.CloseWithStatus(websocket.CloseNormalClosure, "")
}

func (s *session) CloseWithStatus(code int, reason string) error {
	s.writeMu.Lock()
	_ = s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeControlTimeout),
	)
	s.writeMu.Unlock()
	s.connected.Store(false)
	return s.conn.Close()
}

func (s *session) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

func (s *session) SetIdleTimeout(d time.Duration) {
	s.idle.Store(int64(d))
	s.refreshDeadline()
}

func (s *session) IsConnected() bool { return s.connected.Load() }

func (s *session) Request() *http.Request { return s.req }

// refreshDeadline pushes the read deadline out by the idle timeout; the
// read loop calls it after every message.
func (s *session) refreshDeadline() {
	idle := time.Duration(s.idle.Load())
	if idle <= 0 {
		_ = s.conn.SetReadDeadline(time.Time{})
		return
	}
	_ = s.conn.SetReadDeadline(time.Now().Add(idle))
}

const writeControlTimeout = 5 * time.Second
