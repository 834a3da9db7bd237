package config

import (
	"fmt"
	"time"
)

// ClientAuth selects how the secure connector treats client certificates.
type ClientAuth string

const (
	// ClientAuthNone never requests a client certificate.
	ClientAuthNone ClientAuth = "none"
	// ClientAuthWant requests a client certificate but accepts connections without one.
	ClientAuthWant ClientAuth = "want"
	// ClientAuthNeed requires a verified client certificate.
	ClientAuthNeed ClientAuth = "need"
)

// Config describes every connector, transport and pool setting the server
// understands, with environment variable support. It is read-only input:
// construct it once, validate it, and hand it to the server.
type Config struct {
	// Listener selection. Setting SSLPort implies SSL. A zero Port binds an
	// ephemeral port; the documented default of 80 comes from Default() or
	// the environment.
	Host    string `env:"SERVER_HOST" envDefault:""`
	HTTP    bool   `env:"SERVER_HTTP" envDefault:"true"`
	Port    int    `env:"SERVER_PORT" envDefault:"80"`
	SSL     bool   `env:"SERVER_SSL" envDefault:"false"`
	SSLPort int    `env:"SERVER_SSL_PORT" envDefault:"0"`

	// Protocol toggles
	HTTP2         bool `env:"SERVER_HTTP2" envDefault:"false"`          // ALPN-negotiated h2 on the secure connector
	HTTP2C        bool `env:"SERVER_HTTP2C" envDefault:"false"`         // cleartext h2 upgrade on the plain connector
	ProxyProtocol bool `env:"SERVER_PROXY_PROTOCOL" envDefault:"false"` // PROXY header decoding on the plain connector

	// Connection idle timeouts
	MaxIdleTime   time.Duration `env:"SERVER_MAX_IDLE_TIME" envDefault:"200s"`
	WSMaxIdleTime time.Duration `env:"SERVER_WS_MAX_IDLE_TIME" envDefault:"500s"`

	// Transport limits
	OutputBufferSize   int    `env:"SERVER_OUTPUT_BUFFER_SIZE" envDefault:"32768"`
	RequestHeaderSize  int    `env:"SERVER_REQUEST_HEADER_SIZE" envDefault:"8192"`
	ResponseHeaderSize int    `env:"SERVER_RESPONSE_HEADER_SIZE" envDefault:"8192"`
	HeaderCacheSize    int    `env:"SERVER_HEADER_CACHE_SIZE" envDefault:"512"`
	SendServerVersion  bool   `env:"SERVER_SEND_SERVER_VERSION" envDefault:"true"`
	SendDateHeader     bool   `env:"SERVER_SEND_DATE_HEADER" envDefault:"false"`
	SecureScheme       string `env:"SERVER_SECURE_SCHEME" envDefault:"https"`

	// AllowNullPathInfo is retained for configuration parity with servlet
	// containers, where it selects path-info translation. Request paths are
	// always exposed raw here, so it has no runtime effect.
	AllowNullPathInfo bool `env:"SERVER_ALLOW_NULL_PATH_INFO" envDefault:"false"`

	// TLS material. PEM files on disk; an in-memory *tls.Config can be
	// supplied instead via the server's WithTLSConfig option.
	CertFile     string     `env:"SERVER_TLS_CERT_FILE" envDefault:""`
	KeyFile      string     `env:"SERVER_TLS_KEY_FILE" envDefault:""`
	ClientCAFile string     `env:"SERVER_TLS_CLIENT_CA_FILE" envDefault:""`
	ClientAuth   ClientAuth `env:"SERVER_TLS_CLIENT_AUTH" envDefault:"none"`

	// Connection pool sizing. MaxThreads bounds in-flight connections
	// across all connectors; JobQueue adds accepted-but-waiting headroom
	// on top.
	// MinThreads and ThreadIdleTimeout are retained for configuration
	// parity with thread-per-connection servers: the Go runtime grows and
	// reaps workers itself, so they have no runtime effect.
	MaxThreads        int           `env:"SERVER_MAX_THREADS" envDefault:"50"`
	MinThreads        int           `env:"SERVER_MIN_THREADS" envDefault:"8"`
	ThreadIdleTimeout time.Duration `env:"SERVER_THREAD_IDLE_TIMEOUT" envDefault:"60s"`
	JobQueue          int           `env:"SERVER_JOB_QUEUE" envDefault:"0"`

	// Lifecycle behavior. Join parks the caller of server.Start until the
	// server is stopped elsewhere. Daemon is parity-only: goroutines are
	// always daemonic.
	Join   bool `env:"SERVER_JOIN" envDefault:"true"`
	Daemon bool `env:"SERVER_DAEMON" envDefault:"false"`
}

// Default returns a Config with the documented defaults: a plain HTTP
// connector on port 80 and no secure connector.
func Default() Config {
	return Config{
		HTTP:               true,
		Port:               80,
		MaxIdleTime:        DefaultMaxIdleTime,
		WSMaxIdleTime:      DefaultWSMaxIdleTime,
		OutputBufferSize:   DefaultOutputBufferSize,
		RequestHeaderSize:  DefaultRequestHeaderSize,
		ResponseHeaderSize: DefaultResponseHeaderSize,
		HeaderCacheSize:    DefaultHeaderCacheSize,
		SendServerVersion:  true,
		SecureScheme:       "https",
		ClientAuth:         ClientAuthNone,
		MaxThreads:         DefaultMaxThreads,
		MinThreads:         DefaultMinThreads,
		ThreadIdleTimeout:  DefaultThreadIdleTimeout,
		Join:               true,
	}
}

// Normalized returns a copy with the documented defaults applied to every
// unset field, so struct-literal construction behaves like Default(). Port
// is deliberately excluded: zero keeps its ephemeral-port meaning.
func (c Config) Normalized() Config {
	if c.ClientAuth == "" {
		c.ClientAuth = ClientAuthNone
	}
	if c.MaxIdleTime <= 0 {
		c.MaxIdleTime = DefaultMaxIdleTime
	}
	if c.WSMaxIdleTime <= 0 {
		c.WSMaxIdleTime = DefaultWSMaxIdleTime
	}
	if c.OutputBufferSize <= 0 {
		c.OutputBufferSize = DefaultOutputBufferSize
	}
	if c.RequestHeaderSize <= 0 {
		c.RequestHeaderSize = DefaultRequestHeaderSize
	}
	if c.ResponseHeaderSize <= 0 {
		c.ResponseHeaderSize = DefaultResponseHeaderSize
	}
	if c.HeaderCacheSize <= 0 {
		c.HeaderCacheSize = DefaultHeaderCacheSize
	}
	if c.SecureScheme == "" {
		c.SecureScheme = "https"
	}
	if c.MaxThreads <= 0 {
		c.MaxThreads = DefaultMaxThreads
	}
	if c.MinThreads <= 0 {
		c.MinThreads = DefaultMinThreads
	}
	if c.ThreadIdleTimeout <= 0 {
		c.ThreadIdleTimeout = DefaultThreadIdleTimeout
	}
	return c
}

// Validate reports configuration that can never produce a working server.
// It is called again by the server before any connector binds. An unset
// ClientAuth means none.
func (c Config) Validate() error {
	if !c.HTTP && !c.SSLEnabled() {
		return ErrNoConnector
	}
	switch c.ClientAuth {
	case "", ClientAuthNone, ClientAuthWant, ClientAuthNeed:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidClientAuth, c.ClientAuth)
	}
	return nil
}

// SSLEnabled reports whether a secure connector is requested, either
// explicitly or by setting SSLPort.
func (c Config) SSLEnabled() bool {
	return c.SSL || c.SSLPort > 0
}

// EffectiveSSLPort returns the port the secure connector binds, defaulting
// to 443 when SSL is enabled without an explicit port.
func (c Config) EffectiveSSLPort() int {
	if c.SSLPort > 0 {
		return c.SSLPort
	}
	return DefaultSSLPort
}
