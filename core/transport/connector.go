package transport

import (
	"crypto/tls"
	"net"
	"strconv"
	"time"

	"github.com/joelittlejohn/ring-jetty9-adapter/core/config"
)

// Layer is one protocol layer in a connector's stack. Layers are ordered:
// earlier layers see the connection first.
type Layer string

const (
	// LayerProxy decodes a PROXY protocol header before HTTP parsing begins.
	LayerProxy Layer = "proxy"
	// LayerALPN negotiates the application protocol during the TLS handshake.
	LayerALPN Layer = "alpn"
	// LayerH2 frames HTTP/2 on the secure connector.
	LayerH2 Layer = "h2"
	// LayerH2C upgrades cleartext connections to HTTP/2.
	LayerH2C Layer = "h2c"
	// LayerHTTP1 frames HTTP/1.1 and is present on every connector.
	LayerHTTP1 Layer = "http/1.1"
)

// Connector is a pure description of one bindable listener: an ordered
// protocol stack, an address and an idle timeout, plus the TLS negotiation
// surface for secure connectors. Binding is a separate explicit step (Bind).
type Connector struct {
	Stack       []Layer
	Host        string
	Port        int
	IdleTimeout time.Duration
	TLS         *tls.Config
}

// Addr returns the host:port this connector binds.
func (c Connector) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Secure reports whether this connector negotiates TLS.
func (c Connector) Secure() bool { return c.TLS != nil }

func (c Connector) has(l Layer) bool {
	for _, got := range c.Stack {
		if got == l {
			return true
		}
	}
	return false
}

// Connectors builds one connector description per enabled transport.
//
// Secure connector (SSL enabled or SSLPort set): the base stack is HTTP/1.1;
// with HTTP2 the ALPN negotiator and the HTTP/2 framing are layered ahead of
// it so the negotiated protocol determines runtime behavior per connection.
//
// Plain connector (HTTP enabled): the base stack is HTTP/1.1; HTTP2C layers
// a cleartext-upgrade stage ahead of it, and ProxyProtocol prepends the
// PROXY decoder so the header is consumed before HTTP parsing begins.
func Connectors(cfg config.Config) ([]Connector, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var cs []Connector
	if cfg.SSLEnabled() {
		tc, err := NewTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		stack := []Layer{LayerHTTP1}
		if cfg.HTTP2 {
			stack = append([]Layer{LayerALPN, LayerH2}, stack...)
		}
		cs = append(cs, Connector{
			Stack:       stack,
			Host:        cfg.Host,
			Port:        cfg.EffectiveSSLPort(),
			IdleTimeout: cfg.MaxIdleTime,
			TLS:         tc,
		})
	}
	if cfg.HTTP {
		stack := []Layer{LayerHTTP1}
		if cfg.HTTP2C {
			stack = append([]Layer{LayerH2C}, stack...)
		}
		if cfg.ProxyProtocol {
			stack = append([]Layer{LayerProxy}, stack...)
		}
		cs = append(cs, Connector{
			Stack:       stack,
			Host:        cfg.Host,
			Port:        cfg.Port,
			IdleTimeout: cfg.MaxIdleTime,
		})
	}
	return cs, nil
}
